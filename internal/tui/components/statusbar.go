package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// MessageKind selects how a status message is colored.
type MessageKind int

const (
	// MessageInfo is a neutral message.
	MessageInfo MessageKind = iota
	// MessageSuccess reports a completed action.
	MessageSuccess
	// MessageError reports a failed action.
	MessageError
)

// StatusBarData contains the data to display in the status bar.
type StatusBarData struct {
	Message   string
	Kind      MessageKind
	Filter    string
	Shortcuts []ShortcutDef
}

// StatusBar shows the last action's outcome on the left and contextual
// shortcuts on the right.
type StatusBar struct {
	data  StatusBarData
	width int
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar() *StatusBar {
	return &StatusBar{data: StatusBarData{Shortcuts: ListShortcuts}}
}

// SetData updates the status bar data.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

// SetMessage sets the status message.
func (s *StatusBar) SetMessage(message string, kind MessageKind) {
	s.data.Message = message
	s.data.Kind = kind
}

// Message returns the current status message.
func (s *StatusBar) Message() string {
	return s.data.Message
}

// Kind returns the kind of the current status message.
func (s *StatusBar) Kind() MessageKind {
	return s.data.Kind
}

// ClearMessage removes the status message.
func (s *StatusBar) ClearMessage() {
	s.data.Message = ""
	s.data.Kind = MessageInfo
}

// SetFilter sets the active filter shown in the bar.
func (s *StatusBar) SetFilter(filter string) {
	s.data.Filter = filter
}

// SetShortcuts replaces the shortcuts shown on the right.
func (s *StatusBar) SetShortcuts(shortcuts []ShortcutDef) {
	s.data.Shortcuts = shortcuts
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var left []string
	if s.data.Filter != "" {
		left = append(left, styles.HeaderLabelStyle.Render("Filter: ")+
			styles.HeaderValueStyle.Render(s.data.Filter))
	}
	if s.data.Message != "" {
		left = append(left, s.messageStyle().Render(s.data.Message))
	}
	sep := lipgloss.NewStyle().Foreground(styles.Muted).Render(" │ ")
	leftContent := strings.Join(left, sep)

	rightContent := NewShortcutBar(s.data.Shortcuts...).View()

	containerStyle := styles.StatusBarStyle.Background(styles.Background)
	if s.width > 0 {
		containerStyle = containerStyle.Width(s.width)

		padding := s.width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent) - 2
		if padding > 0 {
			return containerStyle.Render(leftContent + strings.Repeat(" ", padding) + rightContent)
		}
	}

	if leftContent == "" {
		return containerStyle.Render(rightContent)
	}
	return containerStyle.Render(leftContent + "  " + rightContent)
}

func (s *StatusBar) messageStyle() lipgloss.Style {
	switch s.data.Kind {
	case MessageSuccess:
		return styles.SuccessTextStyle
	case MessageError:
		return styles.ErrorTextStyle
	default:
		return styles.MutedTextStyle.Italic(true)
	}
}
