package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// ConfirmAction represents the action being confirmed.
type ConfirmAction string

const (
	// ConfirmActionDelete is for deleting a user entry.
	ConfirmActionDelete ConfirmAction = "delete"
	// ConfirmActionDiscard is for leaving the editor with unsaved changes.
	ConfirmActionDiscard ConfirmAction = "discard"
)

// ConfirmDialog displays a yes/no prompt.
type ConfirmDialog struct {
	visible     bool
	action      ConfirmAction
	title       string
	message     string
	width       int
	destructive bool
}

// NewConfirmDialog creates a new ConfirmDialog component.
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{width: 50}
}

// Show displays the dialog with the given action, title, and message.
func (c *ConfirmDialog) Show(action ConfirmAction, title, message string, destructive bool) {
	c.visible = true
	c.action = action
	c.title = title
	c.message = message
	c.destructive = destructive
}

// ShowDelete asks before removing the file at path.
func (c *ConfirmDialog) ShowDelete(name, path string) {
	c.Show(ConfirmActionDelete, "Delete Entry?",
		"Delete "+name+"?\n"+path+" will be removed.",
		true)
}

// ShowDiscard asks before throwing away editor changes.
func (c *ConfirmDialog) ShowDiscard() {
	c.Show(ConfirmActionDiscard, "Discard Changes?",
		"The entry has unsaved changes.",
		false)
}

// Hide hides the dialog.
func (c *ConfirmDialog) Hide() {
	c.visible = false
}

// IsVisible returns whether the dialog is visible.
func (c *ConfirmDialog) IsVisible() bool {
	return c.visible
}

// Action returns the current action being confirmed.
func (c *ConfirmDialog) Action() ConfirmAction {
	return c.action
}

// SetSize sets the dialog width.
func (c *ConfirmDialog) SetSize(width int) {
	c.width = width
}

// Update handles input messages.
func (c *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if !c.visible {
		return nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch strings.ToLower(key.String()) {
	case "y", "enter":
		action := c.action
		c.Hide()
		return func() tea.Msg {
			return ConfirmYesMsg{Action: action}
		}
	case "n", "esc":
		action := c.action
		c.Hide()
		return func() tea.Msg {
			return ConfirmNoMsg{Action: action}
		}
	}
	return nil
}

// View renders the confirmation dialog.
func (c *ConfirmDialog) View() string {
	if !c.visible {
		return ""
	}

	accent := styles.Warning
	yesStyle := styles.ButtonPrimaryStyle
	if c.destructive {
		accent = styles.Error
		yesStyle = styles.ButtonDangerStyle
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(accent).
		Bold(true).
		Padding(0, 1).
		Width(c.width - 4)
	b.WriteString(titleStyle.Render(c.title))
	b.WriteString("\n\n")

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Width(c.width - 8)
	b.WriteString(msgStyle.Render(c.message))
	b.WriteString("\n\n")

	b.WriteString(yesStyle.Render("[Y]es"))
	b.WriteString("  ")
	b.WriteString(styles.ButtonSecondaryUnfocusedStyle.Render("[N]o"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}

// ConfirmYesMsg is sent when the user confirms.
type ConfirmYesMsg struct {
	Action ConfirmAction
}

// ConfirmNoMsg is sent when the user declines.
type ConfirmNoMsg struct {
	Action ConfirmAction
}
