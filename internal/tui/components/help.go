package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// Shortcut represents a keyboard shortcut.
type Shortcut struct {
	Key  string
	Desc string
}

// ShortcutGroup represents a group of related shortcuts.
type ShortcutGroup struct {
	Title     string
	Shortcuts []Shortcut
}

// DefaultHelpGroups lists every key the entry browser understands.
var DefaultHelpGroups = []ShortcutGroup{
	{
		Title: "Navigation",
		Shortcuts: []Shortcut{
			{"j/↓", "Move down"},
			{"k/↑", "Move up"},
			{"g", "Go to top"},
			{"G", "Go to bottom"},
			{"/", "Filter by name or key"},
		},
	},
	{
		Title: "Entries",
		Shortcuts: []Shortcut{
			{"enter/e", "Edit selected entry"},
			{"n", "New entry"},
			{"s", "Save selected entry to the user directory"},
			{"d", "Delete selected user entry"},
			{"r", "Reload all directories"},
			{".", "Show or hide hidden entries"},
		},
	},
	{
		Title: "Editor",
		Shortcuts: []Shortcut{
			{"tab", "Next field"},
			{"shift+tab", "Previous field"},
			{"space", "Toggle checkbox"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		},
	},
	{
		Title: "General",
		Shortcuts: []Shortcut{
			{"?", "Toggle help"},
			{"q", "Quit"},
		},
	},
}

// HelpOverlay displays keyboard shortcuts.
type HelpOverlay struct {
	visible bool
	width   int
	height  int
	groups  []ShortcutGroup
}

// NewHelpOverlay creates a new HelpOverlay component.
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  60,
		height: 20,
		groups: DefaultHelpGroups,
	}
}

// SetGroups sets custom shortcut groups.
func (h *HelpOverlay) SetGroups(groups []ShortcutGroup) {
	h.groups = groups
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Show makes the overlay visible.
func (h *HelpOverlay) Show() {
	h.visible = true
}

// Hide hides the overlay.
func (h *HelpOverlay) Hide() {
	h.visible = false
}

// Toggle toggles visibility.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the overlay is visible.
func (h *HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update closes the overlay on any key.
func (h *HelpOverlay) Update(msg tea.Msg) tea.Cmd {
	if !h.visible {
		return nil
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		h.Hide()
		return func() tea.Msg {
			return HelpClosedMsg{}
		}
	}
	return nil
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Width(h.width - 4)
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for i, group := range h.groups {
		b.WriteString(renderGroup(group))
		if i < len(h.groups)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(styles.Muted).
		Italic(true).
		Render("Press any key to close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Primary).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}

func renderGroup(group ShortcutGroup) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Bold(true).
		Width(10)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.MutedLight)

	b.WriteString(titleStyle.Render(group.Title))
	b.WriteString("\n")
	for _, shortcut := range group.Shortcuts {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(shortcut.Key))
		b.WriteString(" ")
		b.WriteString(descStyle.Render(shortcut.Desc))
		b.WriteString("\n")
	}

	return b.String()
}

// HelpClosedMsg is sent when the help overlay is closed.
type HelpClosedMsg struct{}
