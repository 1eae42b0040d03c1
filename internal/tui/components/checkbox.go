package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// Checkbox is a labelled boolean form field.
type Checkbox struct {
	label      string
	labelWidth int
	checked    bool
	focused    bool
	id         string
}

// NewCheckbox creates a new Checkbox component.
func NewCheckbox(id, label string) *Checkbox {
	return &Checkbox{
		label: label,
		id:    id,
	}
}

// ID returns the component's unique identifier.
func (c *Checkbox) ID() string {
	return c.id
}

// Label returns the field label.
func (c *Checkbox) Label() string {
	return c.label
}

// Focus focuses the checkbox.
func (c *Checkbox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// Blur removes focus from the checkbox.
func (c *Checkbox) Blur() {
	c.focused = false
}

// Focused returns whether the checkbox is focused.
func (c *Checkbox) Focused() bool {
	return c.focused
}

// Toggle flips the checkbox state.
func (c *Checkbox) Toggle() {
	c.checked = !c.checked
}

// SetChecked sets the checkbox state.
func (c *Checkbox) SetChecked(checked bool) {
	c.checked = checked
}

// Checked returns whether the checkbox is checked.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// SetLabelWidth pads the label so that fields of one form line up.
func (c *Checkbox) SetLabelWidth(width int) {
	c.labelWidth = width
}

// Update toggles the checkbox on enter or space while focused.
func (c *Checkbox) Update(msg tea.Msg) (*Checkbox, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			c.Toggle()
		}
	}

	return c, nil
}

// View renders the checkbox.
func (c *Checkbox) View() string {
	labelStyle := styles.FormLabelStyle
	if c.focused {
		labelStyle = styles.FormLabelFocusedStyle
	}
	if c.labelWidth > 0 {
		labelStyle = labelStyle.Width(c.labelWidth + 2)
	}

	box := styles.CheckboxUncheckedStyle.Render("[ ]")
	if c.checked {
		box = styles.CheckboxCheckedStyle.Render("[x]")
	}
	if c.focused {
		box = styles.FormLabelFocusedStyle.Render(box)
	}

	return labelStyle.Render(c.label+": ") + box
}
