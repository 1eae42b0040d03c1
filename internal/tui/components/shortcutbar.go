package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// ShortcutDef defines a single keyboard shortcut.
type ShortcutDef struct {
	Key  string
	Desc string
}

// ShortcutBar displays contextual keyboard shortcuts on one line.
type ShortcutBar struct {
	shortcuts []ShortcutDef
}

// NewShortcutBar creates a new ShortcutBar with the given shortcuts.
func NewShortcutBar(shortcuts ...ShortcutDef) *ShortcutBar {
	return &ShortcutBar{shortcuts: shortcuts}
}

// View renders the shortcut bar.
func (s *ShortcutBar) View() string {
	if len(s.shortcuts) == 0 {
		return ""
	}

	parts := make([]string, len(s.shortcuts))
	for i, sc := range s.shortcuts {
		parts[i] = styles.KeyStyle.Render(sc.Key) + styles.HelpStyle.Render(":"+sc.Desc)
	}

	sep := lipgloss.NewStyle().Foreground(styles.Muted).Render(" │ ")
	return strings.Join(parts, sep)
}

// Shortcut sets shown in the status bar.
var (
	// ListShortcuts are shortcuts for the entry list.
	ListShortcuts = []ShortcutDef{
		{"enter", "edit"},
		{"n", "new"},
		{"d", "delete"},
		{"/", "filter"},
		{"?", "help"},
		{"q", "quit"},
	}

	// FilterShortcuts are shortcuts while typing a filter.
	FilterShortcuts = []ShortcutDef{
		{"enter", "apply"},
		{"esc", "clear"},
	}

	// EditorShortcuts are shortcuts for the entry editor.
	EditorShortcuts = []ShortcutDef{
		{"tab", "next"},
		{"shift+tab", "prev"},
		{"ctrl+s", "save"},
		{"esc", "cancel"},
	}
)
