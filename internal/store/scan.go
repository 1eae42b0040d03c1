package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/beantownbytes/menuentry/internal/desktop"
)

// scanDir parses every *.desktop file directly inside dir. A missing
// directory yields nothing; any other read error is returned.
func (s *Store) scanDir(dir string, prov desktop.Provenance) ([]*desktop.Entry, []ParseFailure, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("entry directory does not exist", "dir", dir)
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var (
		entries  []*desktop.Entry
		failures []ParseFailure
	)
	for _, item := range items {
		name := item.Name()
		if !strings.HasSuffix(name, desktop.FileExtension) || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		if !isRegular(path, item) {
			continue
		}

		e, err := desktop.ParseFile(path)
		if err != nil {
			s.logger.Warn("skipping malformed entry", "path", path, "error", err)
			failures = append(failures, ParseFailure{Path: path, Err: err})
			continue
		}
		e.Provenance = prov
		entries = append(entries, e)
	}

	return entries, failures, nil
}

// isRegular follows symlinks, which are common for system entries.
func isRegular(path string, item os.DirEntry) bool {
	if item.Type()&os.ModeSymlink == 0 {
		return item.Type().IsRegular()
	}
	info, err := os.Stat(path)
	if err != nil {
		return true // let the parser report the dangling link
	}
	return info.Mode().IsRegular()
}
