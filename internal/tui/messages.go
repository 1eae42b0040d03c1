package tui

import (
	"github.com/beantownbytes/menuentry/internal/desktop"
	"github.com/beantownbytes/menuentry/internal/hooks"
)

// Messages produced by store commands.

// EntriesLoadedMsg is sent when the store finished (re)loading. Auto is set
// for reloads triggered by a change on disk.
type EntriesLoadedMsg struct {
	Entries  []*desktop.Entry
	Failures int
	Refresh  bool
	Auto     bool
	Err      error
}

// DirChangedMsg is sent when the entry directories changed on disk.
type DirChangedMsg struct{}

// EntrySavedMsg is sent when a save finished. Copied is set when a system
// entry was copied to the user directory.
type EntrySavedMsg struct {
	Entry  *desktop.Entry
	Path   string
	Copied bool
	Err    error
}

// EntryDeletedMsg is sent when a delete finished.
type EntryDeletedMsg struct {
	Entry *desktop.Entry
	Err   error
}

// HooksRanMsg is sent when the post-write hooks for a save or delete finished.
type HooksRanMsg struct {
	Event   hooks.Event
	Results []*hooks.Result
}
