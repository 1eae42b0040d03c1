package desktop

import (
	"fmt"
	"io"
	"os"
	"strings"

	menuerrors "github.com/beantownbytes/menuentry/internal/errors"
)

// MainGroup is the header of the group this package models.
const MainGroup = "[Desktop Entry]"

// Keys written and read by this package.
const (
	keyType           = "Type"
	keyName           = "Name"
	keyGenericName    = "GenericName"
	keyComment        = "Comment"
	keyIcon           = "Icon"
	keyTryExec        = "TryExec"
	keyExec           = "Exec"
	keyPath           = "Path"
	keyURL            = "URL"
	keyTerminal       = "Terminal"
	keyCategories     = "Categories"
	keyKeywords       = "Keywords"
	keyMimeType       = "MimeType"
	keyStartupWMClass = "StartupWMClass"
	keyStartupNotify  = "StartupNotify"
	keyNoDisplay      = "NoDisplay"
	keyHidden         = "Hidden"
	keyEnvVars        = "X-Env-Vars"
)

type rawLine struct {
	key   string
	value string
	line  int
}

// ParseFile reads and parses a desktop file. The returned entry's ID and
// Origin are derived from path; Provenance is left for the caller to set.
func ParseFile(path string) (*Entry, error) {
	// #nosec G304: reading entry files from configured directories is the point.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, menuerrors.Wrap(err, menuerrors.ErrParse, "failed to read desktop file").
			WithDetails("path", path)
	}

	e, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	e.SetOrigin(path)
	return e, nil
}

// Parse parses desktop-entry text.
func Parse(r io.Reader) (*Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, menuerrors.Wrap(err, menuerrors.ErrParse, "failed to read desktop entry")
	}
	return parse(data, "")
}

func parse(data []byte, path string) (*Entry, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")

	var (
		main     []rawLine
		groups   []RawGroup
		inMain   bool
		seenMain bool
	)

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if line == MainGroup {
				if seenMain {
					return nil, menuerrors.ParseFailed(path, lineNo, "duplicate [Desktop Entry] group")
				}
				inMain, seenMain = true, true
				continue
			}
			inMain = false
			groups = append(groups, RawGroup{Header: line})
			continue
		}

		switch {
		case inMain:
			key, value, ok := strings.Cut(line, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return nil, menuerrors.ParseFailed(path, lineNo, fmt.Sprintf("expected Key=Value, got %q", line))
			}
			main = append(main, rawLine{key: key, value: strings.TrimSpace(value), line: lineNo})
		case len(groups) > 0:
			g := &groups[len(groups)-1]
			g.Lines = append(g.Lines, line)
		default:
			return nil, menuerrors.ParseFailed(path, lineNo, "content before the first group header")
		}
	}

	if !seenMain {
		return nil, menuerrors.ParseFailed(path, 0, "missing [Desktop Entry] group")
	}

	e, err := fromLines(main, path)
	if err != nil {
		return nil, err
	}
	e.Groups = groups
	return e, nil
}

// fromLines maps the key/value lines of the main group onto an Entry and
// checks the keys required for its type.
func fromLines(lines []rawLine, path string) (*Entry, error) {
	e := &Entry{Type: TypeApplication}

	var (
		rawExec string
		rawEnv  string
		hasEnv  bool
	)

	for _, l := range lines {
		var err error
		switch l.key {
		case keyType:
			e.Type = Type(l.value)
		case keyName:
			e.Name = unescapeValue(l.value)
		case keyGenericName:
			e.GenericName = unescapeValue(l.value)
		case keyComment:
			e.Comment = unescapeValue(l.value)
		case keyIcon:
			e.Icon = unescapeValue(l.value)
		case keyTryExec:
			e.TryExec = unescapeValue(l.value)
		case keyExec:
			rawExec = unescapeValue(l.value)
		case keyPath:
			e.Path = unescapeValue(l.value)
		case keyURL:
			e.URL = unescapeValue(l.value)
		case keyStartupWMClass:
			e.StartupWMClass = unescapeValue(l.value)
		case keyCategories:
			e.Categories = splitList(l.value)
		case keyKeywords:
			e.Keywords = splitList(l.value)
		case keyMimeType:
			e.MimeTypes = splitList(l.value)
		case keyTerminal:
			e.Terminal, err = parseBool(l, path)
		case keyNoDisplay:
			e.NoDisplay, err = parseBool(l, path)
		case keyHidden:
			e.Hidden, err = parseBool(l, path)
		case keyStartupNotify:
			e.StartupNotify, err = parseBool(l, path)
		case keyEnvVars:
			rawEnv, hasEnv = l.value, true
		default:
			e.Extra = append(e.Extra, KeyValue{Key: l.key, Value: l.value})
		}
		if err != nil {
			return nil, err
		}
	}

	if hasEnv {
		for _, item := range splitList(rawEnv) {
			name, value, ok := strings.Cut(item, "=")
			if !ok {
				return nil, menuerrors.ParseFailed(path, 0, fmt.Sprintf("%s item %q is not NAME=value", keyEnvVars, item))
			}
			if err := e.Env.Set(name, value); err != nil {
				return nil, menuerrors.ParseFailed(path, 0, fmt.Sprintf("%s: %v", keyEnvVars, err))
			}
		}
		rawExec = stripEnvPrefix(rawExec, e.Env)
	}
	e.Exec = rawExec

	if !e.Type.IsValid() {
		return nil, menuerrors.ParseFailed(path, 0, fmt.Sprintf("unsupported Type %q", e.Type))
	}
	if e.Name == "" {
		return nil, menuerrors.ParseFailed(path, 0, "missing required key Name")
	}
	switch e.Type {
	case TypeApplication:
		if e.Exec == "" {
			return nil, menuerrors.ParseFailed(path, 0, "missing required key Exec for Type=Application")
		}
	case TypeLink:
		if e.URL == "" {
			return nil, menuerrors.ParseFailed(path, 0, "missing required key URL for Type=Link")
		}
	}

	return e, nil
}

// parseBool accepts true/false in any case, and the legacy 1/0.
func parseBool(l rawLine, path string) (bool, error) {
	switch strings.ToLower(l.value) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, menuerrors.ParseFailed(path, l.line, fmt.Sprintf("%s must be true or false, got %q", l.key, l.value))
	}
}
