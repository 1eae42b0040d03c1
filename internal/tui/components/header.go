// Package components provides reusable TUI components for menuentry.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// HeaderData contains the data to display in the header.
type HeaderData struct {
	UserDir  string
	Entries  int
	System   int
	User     int
	Failures int
}

// Header displays the user directory and listing counts.
type Header struct {
	data  HeaderData
	width int
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{data: HeaderData{UserDir: "-"}}
}

// SetData updates the header data.
func (h *Header) SetData(data HeaderData) {
	h.data = data
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	sep := lipgloss.NewStyle().
		Foreground(styles.MutedLight).
		Render(" │ ")

	item := func(label, value string) string {
		return styles.HeaderLabelStyle.Render(label+": ") + styles.HeaderValueStyle.Render(value)
	}

	content := styles.TitleStyle.Render("MENUENTRY") + sep +
		item("User dir", h.data.UserDir) + sep +
		item("Entries", fmt.Sprintf("%d", h.data.Entries)) + sep +
		item("System", fmt.Sprintf("%d", h.data.System)) + sep +
		item("User", fmt.Sprintf("%d", h.data.User))

	if h.data.Failures > 0 {
		content += sep + styles.WarningTextStyle.Render(fmt.Sprintf("%d unreadable", h.data.Failures))
	}

	headerStyle := styles.HeaderStyle
	if h.width > 0 {
		headerStyle = headerStyle.Width(h.width)
	}
	return headerStyle.Render(content)
}
