// Package desktop provides the desktop entry data model: parsing and
// serializing .desktop files, field validation, and the environment
// overrides attached to an entry's launch command.
package desktop

import (
	"path/filepath"
	"strings"
)

// FileExtension is the suffix every desktop entry file name carries.
const FileExtension = ".desktop"

// Type is the kind of desktop entry.
type Type string

const (
	// TypeApplication launches a program.
	TypeApplication Type = "Application"
	// TypeLink opens a URL.
	TypeLink Type = "Link"
	// TypeDirectory describes a menu directory.
	TypeDirectory Type = "Directory"
)

// IsValid returns true if the type is one we know how to edit.
func (t Type) IsValid() bool {
	switch t {
	case TypeApplication, TypeLink, TypeDirectory:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// Provenance records where an entry came from and therefore where it may be written.
type Provenance string

const (
	// ProvenanceSystem marks entries from a shared, read-only directory.
	ProvenanceSystem Provenance = "system"
	// ProvenanceUser marks entries in (or destined for) the user's own directory.
	ProvenanceUser Provenance = "user"
)

// String returns the string representation of the provenance.
func (p Provenance) String() string {
	return string(p)
}

// KeyValue is a raw key/value line of the [Desktop Entry] group that this
// package does not model, such as "Name[de]" or "X-GNOME-Autostart-enabled".
type KeyValue struct {
	Key   string
	Value string
}

// RawGroup is a group other than [Desktop Entry] (e.g. "[Desktop Action new]"),
// carried through unchanged so that copied entries keep their actions.
type RawGroup struct {
	Header string
	Lines  []string
}

// Entry represents one .desktop file.
type Entry struct {
	// ID is the file-name key, e.g. "firefox.desktop".
	ID string
	// Type is the entry type (default: Application).
	Type Type

	Name           string
	GenericName    string
	Comment        string
	Icon           string
	TryExec        string
	Exec           string
	Path           string // working directory
	URL            string
	StartupWMClass string

	Terminal      bool
	NoDisplay     bool
	Hidden        bool
	StartupNotify bool

	Categories []string
	Keywords   []string
	MimeTypes  []string

	// Env holds environment overrides applied to Exec.
	Env EnvOverrides

	// Extra holds unmodelled keys of the [Desktop Entry] group in file order.
	Extra []KeyValue
	// Groups holds the other groups of the file in file order.
	Groups []RawGroup

	// Provenance says whether the entry is a system or user entry.
	Provenance Provenance
	// Origin is the path the entry was read from; empty for new entries.
	Origin string
}

// NewEntry returns the template used for the "new entry" action: an unsaved
// user Application with no file name yet.
func NewEntry() *Entry {
	return &Entry{
		Type:       TypeApplication,
		Provenance: ProvenanceUser,
	}
}

// IsSystem returns true if the entry comes from a system directory.
func (e *Entry) IsSystem() bool {
	return e.Provenance == ProvenanceSystem
}

// IsNew returns true if the entry has never been written to disk.
func (e *Entry) IsNew() bool {
	return e.Origin == ""
}

// BaseName returns the ID without the .desktop suffix.
func (e *Entry) BaseName() string {
	return strings.TrimSuffix(e.ID, FileExtension)
}

// SetOrigin records the file an entry was read from or written to and
// derives the ID from it.
func (e *Entry) SetOrigin(path string) {
	e.Origin = path
	e.ID = filepath.Base(path)
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	clone := *e

	clone.Categories = cloneStrings(e.Categories)
	clone.Keywords = cloneStrings(e.Keywords)
	clone.MimeTypes = cloneStrings(e.MimeTypes)
	clone.Env = e.Env.Clone()

	if e.Extra != nil {
		clone.Extra = make([]KeyValue, len(e.Extra))
		copy(clone.Extra, e.Extra)
	}
	if e.Groups != nil {
		clone.Groups = make([]RawGroup, len(e.Groups))
		for i, g := range e.Groups {
			clone.Groups[i] = RawGroup{Header: g.Header, Lines: cloneStrings(g.Lines)}
		}
	}

	return &clone
}

// ExtraValue returns the raw value of an unmodelled key.
func (e *Entry) ExtraValue(key string) (string, bool) {
	for _, kv := range e.Extra {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
