package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// TextInput wraps a bubbles textinput as a labelled form field.
type TextInput struct {
	model      textinput.Model
	label      string
	labelWidth int
	focused    bool
	width      int
	id         string
	errMsg     string
}

// NewTextInput creates a new TextInput component.
func NewTextInput(id, label string) *TextInput {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 30
	ti.Prompt = ""

	return &TextInput{
		model: ti,
		label: label,
		id:    id,
	}
}

// ID returns the component's unique identifier.
func (t *TextInput) ID() string {
	return t.id
}

// Label returns the field label.
func (t *TextInput) Label() string {
	return t.label
}

// Focus focuses the text input.
func (t *TextInput) Focus() tea.Cmd {
	t.focused = true
	return t.model.Focus()
}

// Blur removes focus from the text input.
func (t *TextInput) Blur() {
	t.focused = false
	t.model.Blur()
}

// Focused returns whether the text input is focused.
func (t *TextInput) Focused() bool {
	return t.focused
}

// SetValue sets the text input value and moves the cursor to the end.
func (t *TextInput) SetValue(value string) {
	t.model.SetValue(value)
	t.model.CursorEnd()
}

// Value returns the current text input value.
func (t *TextInput) Value() string {
	return t.model.Value()
}

// SetPlaceholder sets the placeholder text.
func (t *TextInput) SetPlaceholder(placeholder string) {
	t.model.Placeholder = placeholder
}

// SetLabelWidth pads the label so that fields of one form line up.
func (t *TextInput) SetLabelWidth(width int) {
	t.labelWidth = width
}

// SetError attaches a validation message shown after the input.
// An empty message clears it.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Error returns the attached validation message.
func (t *TextInput) Error() string {
	return t.errMsg
}

// SetWidth sets the width of the text input.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	labelWidth := t.labelWidth
	if labelWidth < len(t.label) {
		labelWidth = len(t.label)
	}
	t.model.Width = width - labelWidth - 5 // label, ": " and padding
	if t.model.Width < 10 {
		t.model.Width = 10
	}
}

// Update handles messages for the text input.
func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t *TextInput) View() string {
	labelStyle := styles.FormLabelStyle
	inputStyle := styles.FormInputStyle
	if t.focused {
		labelStyle = styles.FormLabelFocusedStyle
		inputStyle = styles.FormInputFocusedStyle
	}
	if t.labelWidth > 0 {
		labelStyle = labelStyle.Width(t.labelWidth + 2)
	}

	view := labelStyle.Render(t.label+": ") + inputStyle.Render(t.model.View())
	if t.errMsg != "" {
		view += " " + lipgloss.NewStyle().Foreground(styles.Error).Render(t.errMsg)
	}
	return view
}

// Reset clears the text input value.
func (t *TextInput) Reset() {
	t.model.Reset()
	t.errMsg = ""
}
