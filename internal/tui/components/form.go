package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// FormField is the interface that all form fields must implement.
type FormField interface {
	ID() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	View() string
}

// labelled is implemented by fields whose labels can be aligned.
type labelled interface {
	Label() string
	SetLabelWidth(width int)
}

// FormSubmittedMsg is sent when a button of the form is activated.
type FormSubmittedMsg struct {
	FormID   string
	ButtonID string
}

// FormCanceledMsg is sent when a form is canceled with esc.
type FormCanceledMsg struct {
	FormID string
}

// Form is a container for form fields with navigation support.
type Form struct {
	id          string
	title       string
	fields      []FormField
	buttons     []*Button
	focusIndex  int
	width       int
	height      int
	scrollStart int
	showHelp    bool
}

// NewForm creates a new Form container.
func NewForm(id, title string) *Form {
	return &Form{
		id:       id,
		title:    title,
		showHelp: true,
	}
}

// ID returns the form's unique identifier.
func (f *Form) ID() string {
	return f.id
}

// SetTitle sets the form title.
func (f *Form) SetTitle(title string) {
	f.title = title
}

// AddFields adds fields to the form. Buttons are rendered on one row below
// the other fields.
func (f *Form) AddFields(fields ...FormField) {
	for _, field := range fields {
		f.fields = append(f.fields, field)
		if b, ok := field.(*Button); ok {
			f.buttons = append(f.buttons, b)
		}
	}
}

// AlignLabels pads every label to the width of the longest one.
func (f *Form) AlignLabels() {
	width := 0
	for _, field := range f.fields {
		if l, ok := field.(labelled); ok && len(l.Label()) > width {
			width = len(l.Label())
		}
	}
	for _, field := range f.fields {
		if l, ok := field.(labelled); ok {
			l.SetLabelWidth(width)
		}
	}
}

// SetSize sets the form width and the number of field rows shown at once.
// A height of zero shows every field.
func (f *Form) SetSize(width, height int) {
	f.width = width
	f.height = height
	for _, field := range f.fields {
		if ti, ok := field.(*TextInput); ok {
			ti.SetWidth(width - 4)
		}
	}
	f.updateScroll()
}

// SetShowHelp sets whether to show help text.
func (f *Form) SetShowHelp(show bool) {
	f.showHelp = show
}

// FocusIndex returns the current focus index.
func (f *Form) FocusIndex() int {
	return f.focusIndex
}

// FocusedField returns the currently focused field, or nil if none.
func (f *Form) FocusedField() FormField {
	if f.focusIndex >= 0 && f.focusIndex < len(f.fields) {
		return f.fields[f.focusIndex]
	}
	return nil
}

// GetField returns a field by ID.
func (f *Form) GetField(id string) FormField {
	for _, field := range f.fields {
		if field.ID() == id {
			return field
		}
	}
	return nil
}

// Fields returns all form fields.
func (f *Form) Fields() []FormField {
	return f.fields
}

// Focus focuses the first field.
func (f *Form) Focus() tea.Cmd {
	return f.FocusField(0)
}

// Blur blurs all fields in the form.
func (f *Form) Blur() {
	for _, field := range f.fields {
		field.Blur()
	}
}

// NextField moves focus to the next field, wrapping around.
func (f *Form) NextField() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.FocusField((f.focusIndex + 1) % len(f.fields))
}

// PrevField moves focus to the previous field, wrapping around.
func (f *Form) PrevField() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	index := f.focusIndex - 1
	if index < 0 {
		index = len(f.fields) - 1
	}
	return f.FocusField(index)
}

// FocusField focuses a specific field by index.
func (f *Form) FocusField(index int) tea.Cmd {
	if index < 0 || index >= len(f.fields) {
		return nil
	}

	f.Blur()
	f.focusIndex = index
	f.updateScroll()
	return f.fields[f.focusIndex].Focus()
}

// FocusFieldByID focuses the field with the given ID.
func (f *Form) FocusFieldByID(id string) tea.Cmd {
	for i, field := range f.fields {
		if field.ID() == id {
			return f.FocusField(i)
		}
	}
	return nil
}

// rows is the number of non-button fields.
func (f *Form) rows() int {
	return len(f.fields) - len(f.buttons)
}

// updateScroll keeps the focused row inside the visible window.
func (f *Form) updateScroll() {
	if f.height <= 0 || f.rows() <= f.height {
		f.scrollStart = 0
		return
	}
	focus := f.focusIndex
	if focus >= f.rows() {
		focus = f.rows() - 1
	}
	if focus < f.scrollStart {
		f.scrollStart = focus
	}
	if focus >= f.scrollStart+f.height {
		f.scrollStart = focus - f.height + 1
	}
}

// Update handles Tab/Shift+Tab navigation and delegates other messages to
// the focused field.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			return f, f.NextField()
		case "shift+tab", "up":
			return f, f.PrevField()
		case "esc":
			return f, func() tea.Msg {
				return FormCanceledMsg{FormID: f.id}
			}
		}
	}

	var cmd tea.Cmd
	switch field := f.FocusedField().(type) {
	case *TextInput:
		_, cmd = field.Update(msg)
	case *Checkbox:
		_, cmd = field.Update(msg)
	case *Button:
		var activated bool
		_, cmd, activated = field.Update(msg)
		if activated {
			buttonID := field.ID()
			return f, func() tea.Msg {
				return FormSubmittedMsg{FormID: f.id, ButtonID: buttonID}
			}
		}
	}

	return f, cmd
}

// View renders the form.
func (f *Form) View() string {
	var b strings.Builder

	if f.title != "" {
		b.WriteString(styles.FormTitleStyle.Render(f.title))
		b.WriteString("\n\n")
	}

	var rows []FormField
	for _, field := range f.fields {
		if _, ok := field.(*Button); !ok {
			rows = append(rows, field)
		}
	}

	end := len(rows)
	if f.height > 0 && f.scrollStart+f.height < end {
		end = f.scrollStart + f.height
	}
	if f.scrollStart > 0 {
		b.WriteString(styles.MutedTextStyle.Render("  ↑ more above") + "\n")
	}
	for _, field := range rows[f.scrollStart:end] {
		b.WriteString("  ")
		b.WriteString(field.View())
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString(styles.MutedTextStyle.Render("  ↓ more below") + "\n")
	}

	if len(f.buttons) > 0 {
		views := make([]string, len(f.buttons))
		for i, btn := range f.buttons {
			views[i] = btn.View()
		}
		b.WriteString("\n  ")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(views, "  ")))
	}

	if f.showHelp {
		b.WriteString("\n\n  ")
		b.WriteString(NewShortcutBar(EditorShortcuts...).View())
	}

	return b.String()
}
