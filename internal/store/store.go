// Package store merges the system and user desktop entry directories into
// one listing and mediates every write to the user directory.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/beantownbytes/menuentry/internal/desktop"
	menuerrors "github.com/beantownbytes/menuentry/internal/errors"
	"github.com/beantownbytes/menuentry/internal/logging"
)

const (
	dirPerm  = 0755
	filePerm = 0644

	lockTimeout      = time.Second
	lockPollInterval = 100 * time.Millisecond
)

// Options configures the directories a Store reads and writes.
type Options struct {
	// UserDir is the single writable entry directory.
	UserDir string
	// SystemDirs are read-only entry directories in precedence order;
	// the first directory wins when two contain the same key.
	SystemDirs []string
	// LockPath, when set, is flock'ed while Save and Delete touch the disk.
	LockPath string
}

// ParseFailure records a file that was skipped while loading.
type ParseFailure struct {
	Path string
	Err  error
}

func (f ParseFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Store holds the merged listing of desktop entries.
type Store struct {
	opts   Options
	logger *logging.Logger

	mu       sync.RWMutex
	system   map[string]*desktop.Entry
	user     map[string]*desktop.Entry
	entries  []*desktop.Entry
	failures []ParseFailure
}

// New creates a Store for the given directories. It does not touch the disk;
// call LoadAll for that.
func New(opts Options, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNoop()
	}
	return &Store{
		opts:   opts,
		logger: logger,
		system: map[string]*desktop.Entry{},
		user:   map[string]*desktop.Entry{},
	}
}

// Options returns the directories the store was created with.
func (s *Store) Options() Options {
	return s.opts
}

// LoadAll scans the system directories and then the user directory and
// rebuilds the listing. Files that fail to parse are skipped and recorded,
// see Failures. The error is non-nil only when the user directory exists
// but cannot be read.
func (s *Store) LoadAll() ([]*desktop.Entry, error) {
	system := map[string]*desktop.Entry{}
	user := map[string]*desktop.Entry{}
	var failures []ParseFailure

	for _, dir := range s.opts.SystemDirs {
		entries, fails, err := s.scanDir(dir, desktop.ProvenanceSystem)
		if err != nil {
			s.logger.Warn("skipping unreadable system directory", "dir", dir, "error", err)
			failures = append(failures, ParseFailure{Path: dir, Err: err})
			continue
		}
		failures = append(failures, fails...)

		for _, e := range entries {
			if prev, ok := system[e.ID]; ok {
				s.logger.Debug("system entry shadowed by earlier directory",
					"id", e.ID, "path", e.Origin, "winner", prev.Origin)
				continue
			}
			system[e.ID] = e
		}
	}

	if s.opts.UserDir != "" {
		entries, fails, err := s.scanDir(s.opts.UserDir, desktop.ProvenanceUser)
		if err != nil {
			return nil, menuerrors.ReadDirFailed(s.opts.UserDir, err)
		}
		failures = append(failures, fails...)

		for _, e := range entries {
			if sys, ok := system[e.ID]; ok {
				s.logger.Debug("system entry shadowed by user entry", "id", e.ID, "system", sys.Origin)
			}
			user[e.ID] = e
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.system = system
	s.user = user
	s.failures = failures
	s.rebuild()

	s.logger.Info("loaded entries",
		"entries", len(s.entries),
		"system", len(system),
		"user", len(user),
		"failures", len(failures))

	return cloneAll(s.entries), nil
}

// Refresh discards the current listing and loads it again.
func (s *Store) Refresh() ([]*desktop.Entry, error) {
	return s.LoadAll()
}

// Entries returns copies of the current listing.
func (s *Store) Entries() []*desktop.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.entries)
}

// Get returns a copy of the listed entry with the given key.
func (s *Store) Get(id string) (*desktop.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Failures returns the files skipped by the last load.
func (s *Store) Failures() []ParseFailure {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ParseFailure, len(s.failures))
	copy(out, s.failures)
	return out
}

// Save validates e and writes it to the user directory, returning the path
// written. A system entry is never written in place: Save writes a user copy
// under a new key instead. On success e is updated with the key, origin and
// provenance of the written file.
func (s *Store) Save(e *desktop.Entry) (string, error) {
	if e == nil {
		return "", menuerrors.ValidationFailed("", desktop.Validate(nil))
	}
	if errs := desktop.Validate(e); len(errs) > 0 {
		return "", menuerrors.ValidationFailed(e.ID, errs)
	}
	if s.opts.UserDir == "" {
		return "", menuerrors.WriteFailed(e.ID, fmt.Errorf("no user directory configured"))
	}

	unlock, err := s.lock()
	if err != nil {
		return "", err
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	switch {
	case e.IsSystem():
		base := e.BaseName()
		if base == "" {
			base = slug(e.Name)
		}
		id = uniqueID(base, 1, s.taken)
	case e.ID == "":
		id = uniqueID(slug(e.Name), 0, s.taken)
	default:
		id = e.ID
	}

	saved := e.Clone()
	saved.ID = id
	saved.Provenance = desktop.ProvenanceUser

	path := filepath.Join(s.opts.UserDir, id)
	if err := os.MkdirAll(s.opts.UserDir, dirPerm); err != nil {
		return "", menuerrors.WriteFailed(path, err)
	}
	if err := writeFileAtomic(path, desktop.Serialize(saved)); err != nil {
		return "", menuerrors.WriteFailed(path, err)
	}
	saved.SetOrigin(path)

	if e.IsSystem() {
		s.logger.Info("copied system entry", "from", e.Origin, "to", path)
	} else {
		s.logger.Info("saved entry", "id", id, "path", path)
	}

	s.user[id] = saved
	s.rebuild()

	e.ID = saved.ID
	e.Origin = saved.Origin
	e.Provenance = saved.Provenance

	return path, nil
}

// Delete removes a user entry's file and drops it from the listing. System
// entries are refused with ErrProtected. When the file is already gone the
// entry is still dropped and ErrNotFound is returned; see IsIdempotent.
func (s *Store) Delete(e *desktop.Entry) error {
	if e == nil {
		return menuerrors.EntryNotFound("", "")
	}
	if e.IsSystem() {
		s.logger.Warn("refusing to delete system entry", "id", e.ID, "path", e.Origin)
		return menuerrors.ProtectedEntry(e.ID, e.Origin)
	}
	if e.ID == "" {
		return menuerrors.EntryNotFound(e.Name, "")
	}
	if !desktop.ValidID(e.ID) {
		return menuerrors.DeleteFailed(e.ID,
			fmt.Errorf("%q is not a plain file name ending in %s", e.ID, desktop.FileExtension))
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.opts.UserDir, e.ID)
	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return menuerrors.DeleteFailed(path, err)
	}

	delete(s.user, e.ID)
	s.rebuild()

	if err != nil {
		s.logger.Info("entry already deleted", "id", e.ID, "path", path)
		return menuerrors.EntryNotFound(e.ID, path)
	}

	s.logger.Info("deleted entry", "id", e.ID, "path", path)
	return nil
}

// IsIdempotent reports whether err from Delete means the entry was already
// absent, which callers treat as success.
func IsIdempotent(err error) bool {
	return err != nil && menuerrors.Is(err, menuerrors.ErrNotFound)
}

// lookup finds the listed entry for id. Caller must hold s.mu.
func (s *Store) lookup(id string) (*desktop.Entry, bool) {
	if e, ok := s.user[id]; ok {
		return e, true
	}
	e, ok := s.system[id]
	return e, ok
}

// taken reports whether id is used by any listed entry or by a file in
// the user directory. Caller must hold s.mu.
func (s *Store) taken(id string) bool {
	if _, ok := s.lookup(id); ok {
		return true
	}
	_, err := os.Lstat(filepath.Join(s.opts.UserDir, id))
	return err == nil
}

// rebuild recomputes the sorted listing from the system and user maps.
// Caller must hold s.mu.
func (s *Store) rebuild() {
	entries := make([]*desktop.Entry, 0, len(s.system)+len(s.user))
	for id, e := range s.system {
		if _, shadowed := s.user[id]; shadowed {
			continue
		}
		entries = append(entries, e)
	}
	for _, e := range s.user {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].ID < entries[j].ID
	})
	s.entries = entries
}

// lock takes the cross-process lock when one is configured.
func (s *Store) lock() (func(), error) {
	if s.opts.LockPath == "" {
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.opts.LockPath), dirPerm); err != nil {
		return nil, menuerrors.WriteFailed(s.opts.LockPath, err)
	}

	fileLock := flock.New(s.opts.LockPath)
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, lockPollInterval)
	if err != nil {
		return nil, menuerrors.WriteFailed(s.opts.LockPath, fmt.Errorf("failed to acquire lock: %w", err))
	}
	if !locked {
		return nil, menuerrors.WriteFailed(s.opts.LockPath, fmt.Errorf("failed to acquire lock: timeout after %v", lockTimeout))
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			s.logger.Warn("failed to release lock", "path", s.opts.LockPath, "error", err)
		}
	}, nil
}

func cloneAll(entries []*desktop.Entry) []*desktop.Entry {
	out := make([]*desktop.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
