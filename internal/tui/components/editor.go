package components

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beantownbytes/menuentry/internal/desktop"
	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// Editor field IDs.
const (
	FieldName           = "name"
	FieldExec           = "exec"
	FieldComment        = "comment"
	FieldIcon           = "icon"
	FieldPath           = "path"
	FieldCategories     = "categories"
	FieldKeywords       = "keywords"
	FieldEnv            = "env"
	FieldMimeTypes      = "mime_types"
	FieldStartupWMClass = "startup_wm_class"
	FieldURL            = "url"
	FieldType           = "type"
	FieldTerminal       = "terminal"
	FieldNoDisplay      = "no_display"
	FieldHidden         = "hidden"

	buttonSave   = "save"
	buttonCancel = "cancel"
)

// validationFields maps desktop validation fields to editor inputs.
var validationFields = map[string]string{
	desktop.FieldName:       FieldName,
	desktop.FieldExec:       FieldExec,
	desktop.FieldURL:        FieldURL,
	desktop.FieldType:       FieldType,
	desktop.FieldCategories: FieldCategories,
	desktop.FieldKeywords:   FieldKeywords,
	desktop.FieldMimeTypes:  FieldMimeTypes,
	desktop.FieldEnv:        FieldEnv,
}

// EditorSubmitMsg is sent when the user saves the editor. Entry is a fresh
// copy of the edited entry with the form values applied.
type EditorSubmitMsg struct {
	Entry *desktop.Entry
}

// EditorCancelMsg is sent when the user leaves the editor without saving.
type EditorCancelMsg struct {
	Dirty bool
}

// EntryEditor is a form over the editable fields of one desktop entry.
type EntryEditor struct {
	form     *Form
	inputs   map[string]*TextInput
	checks   map[string]*Checkbox
	original *desktop.Entry
	snapshot string
	errMsg   string
	active   bool
	width    int
}

// NewEntryEditor creates a new, inactive EntryEditor.
func NewEntryEditor() *EntryEditor {
	ed := &EntryEditor{
		form:   NewForm("entry-editor", ""),
		inputs: map[string]*TextInput{},
		checks: map[string]*Checkbox{},
		width:  80,
	}

	text := []struct{ id, label, placeholder string }{
		{FieldName, "Name", "Application name"},
		{FieldExec, "Exec", "command %U"},
		{FieldComment, "Comment", ""},
		{FieldIcon, "Icon", "icon name or path"},
		{FieldPath, "Working dir", ""},
		{FieldCategories, "Categories", "Utility;Development"},
		{FieldKeywords, "Keywords", "word;other"},
		{FieldEnv, "Env", "NAME=value;OTHER=1"},
		{FieldMimeTypes, "MIME types", "text/plain;image/png"},
		{FieldStartupWMClass, "StartupWMClass", ""},
		{FieldURL, "URL", "https://"},
		{FieldType, "Type", "Application, Link or Directory"},
	}
	for _, f := range text {
		ti := NewTextInput(f.id, f.label)
		ti.SetPlaceholder(f.placeholder)
		ed.inputs[f.id] = ti
		ed.form.AddFields(ti)
	}

	checks := []struct{ id, label string }{
		{FieldTerminal, "Terminal"},
		{FieldNoDisplay, "NoDisplay"},
		{FieldHidden, "Hidden"},
	}
	for _, f := range checks {
		cb := NewCheckbox(f.id, f.label)
		ed.checks[f.id] = cb
		ed.form.AddFields(cb)
	}

	save := NewButton(buttonSave, "Save")
	cancel := NewButton(buttonCancel, "Cancel")
	cancel.SetStyle(ButtonStyleSecondary)
	ed.form.AddFields(save, cancel)

	ed.form.AlignLabels()
	return ed
}

// SetSize sets the editor dimensions.
func (ed *EntryEditor) SetSize(width, height int) {
	ed.width = width
	rows := height - 12 // title, notes, buttons, help and border
	if rows < 3 {
		rows = 3
	}
	ed.form.SetSize(width-6, rows)
}

// IsActive returns true while an entry is being edited.
func (ed *EntryEditor) IsActive() bool {
	return ed.active
}

// Open loads e into the form and activates the editor. e is not modified.
func (ed *EntryEditor) Open(e *desktop.Entry) tea.Cmd {
	ed.original = e.Clone()
	ed.errMsg = ""

	ed.setText(FieldName, e.Name)
	ed.setText(FieldExec, e.Exec)
	ed.setText(FieldComment, e.Comment)
	ed.setText(FieldIcon, e.Icon)
	ed.setText(FieldPath, e.Path)
	ed.setText(FieldCategories, strings.Join(e.Categories, ";"))
	ed.setText(FieldKeywords, strings.Join(e.Keywords, ";"))
	ed.setText(FieldEnv, e.Env.String())
	ed.setText(FieldMimeTypes, strings.Join(e.MimeTypes, ";"))
	ed.setText(FieldStartupWMClass, e.StartupWMClass)
	ed.setText(FieldURL, e.URL)
	ed.setText(FieldType, e.Type.String())
	ed.checks[FieldTerminal].SetChecked(e.Terminal)
	ed.checks[FieldNoDisplay].SetChecked(e.NoDisplay)
	ed.checks[FieldHidden].SetChecked(e.Hidden)

	switch {
	case e.IsNew() && !e.IsSystem():
		ed.form.SetTitle("New Entry")
	case e.IsSystem():
		ed.form.SetTitle("Edit " + e.ID + " (system)")
	default:
		ed.form.SetTitle("Edit " + e.ID)
	}

	ed.snapshot = ed.values()
	ed.active = true
	return ed.form.Focus()
}

// Close deactivates the editor.
func (ed *EntryEditor) Close() {
	ed.active = false
	ed.original = nil
	ed.errMsg = ""
	ed.form.Blur()
}

func (ed *EntryEditor) setText(id, value string) {
	ti := ed.inputs[id]
	ti.Reset()
	ti.SetValue(value)
}

func (ed *EntryEditor) text(id string) string {
	return ed.inputs[id].Value()
}

// values renders every field into one string for change detection.
func (ed *EntryEditor) values() string {
	var b strings.Builder
	for _, field := range ed.form.Fields() {
		switch f := field.(type) {
		case *TextInput:
			b.WriteString(f.Value())
		case *Checkbox:
			if f.Checked() {
				b.WriteString("1")
			} else {
				b.WriteString("0")
			}
		}
		b.WriteByte(0)
	}
	return b.String()
}

// Dirty reports whether any field changed since Open.
func (ed *EntryEditor) Dirty() bool {
	return ed.active && ed.values() != ed.snapshot
}

// Entry applies the form values to a copy of the original entry.
func (ed *EntryEditor) Entry() (*desktop.Entry, error) {
	if ed.original == nil {
		return nil, errors.New("editor is not open")
	}

	env, err := desktop.ParseEnvOverrides(ed.text(FieldEnv))
	if err != nil {
		return nil, err
	}

	e := ed.original.Clone()
	e.Name = ed.text(FieldName)
	e.Exec = ed.text(FieldExec)
	e.Comment = ed.text(FieldComment)
	e.Icon = ed.text(FieldIcon)
	e.Path = ed.text(FieldPath)
	e.Categories = splitField(ed.text(FieldCategories))
	e.Keywords = splitField(ed.text(FieldKeywords))
	e.Env = env
	e.MimeTypes = splitField(ed.text(FieldMimeTypes))
	e.StartupWMClass = ed.text(FieldStartupWMClass)
	e.URL = ed.text(FieldURL)
	e.Type = parseType(ed.text(FieldType))
	e.Terminal = ed.checks[FieldTerminal].Checked()
	e.NoDisplay = ed.checks[FieldNoDisplay].Checked()
	e.Hidden = ed.checks[FieldHidden].Checked()
	return e, nil
}

// parseType maps the typed value onto a known type, ignoring case. Blank
// means Application; anything else is kept for validation to report.
func parseType(s string) desktop.Type {
	s = strings.TrimSpace(s)
	if s == "" {
		return desktop.TypeApplication
	}
	for _, t := range []desktop.Type{desktop.TypeApplication, desktop.TypeLink, desktop.TypeDirectory} {
		if strings.EqualFold(s, t.String()) {
			return t
		}
	}
	return desktop.Type(s)
}

// splitField splits a "a;b;c" list as typed, dropping blank items.
func splitField(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SetError shows err next to the fields it concerns. Validation errors are
// attached to their inputs and the first offending input is focused; any
// other error is shown above the form.
func (ed *EntryEditor) SetError(err error) tea.Cmd {
	ed.clearErrors()
	if err == nil {
		return nil
	}

	var verrs desktop.ValidationErrors
	var verr *desktop.ValidationError
	switch {
	case errors.As(err, &verrs):
	case errors.As(err, &verr):
		verrs = desktop.ValidationErrors{verr}
	default:
		ed.errMsg = err.Error()
		return nil
	}

	var first string
	var general []string
	for _, v := range verrs {
		id, ok := validationFields[v.Field]
		if !ok {
			general = append(general, v.Error())
			continue
		}
		ti := ed.inputs[id]
		if ti.Error() == "" {
			ti.SetError(v.Message)
		}
		if first == "" {
			first = id
		}
	}
	ed.errMsg = strings.Join(general, "; ")

	if first != "" {
		return ed.form.FocusFieldByID(first)
	}
	return nil
}

func (ed *EntryEditor) clearErrors() {
	ed.errMsg = ""
	for _, ti := range ed.inputs {
		ti.SetError("")
	}
}

// Update handles input while the editor is active.
func (ed *EntryEditor) Update(msg tea.Msg) tea.Cmd {
	if !ed.active {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return ed.submit()
		case "esc":
			return ed.cancel()
		}
	case FormSubmittedMsg:
		if msg.ButtonID == buttonCancel {
			return ed.cancel()
		}
		return ed.submit()
	}

	_, cmd := ed.form.Update(msg)
	return cmd
}

func (ed *EntryEditor) submit() tea.Cmd {
	e, err := ed.Entry()
	if err != nil {
		return ed.SetError(err)
	}
	return func() tea.Msg {
		return EditorSubmitMsg{Entry: e}
	}
}

func (ed *EntryEditor) cancel() tea.Cmd {
	dirty := ed.Dirty()
	return func() tea.Msg {
		return EditorCancelMsg{Dirty: dirty}
	}
}

// View renders the editor.
func (ed *EntryEditor) View() string {
	if !ed.active {
		return ""
	}

	var b strings.Builder
	if ed.original != nil && ed.original.IsSystem() {
		b.WriteString(styles.WarningTextStyle.Render("System entry: saving writes a copy to the user directory."))
		b.WriteString("\n")
	}
	if ed.errMsg != "" {
		b.WriteString(styles.ErrorTextStyle.Render(ed.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(ed.form.View())

	return styles.FocusedBoxStyle.Width(ed.width - 2).Render(b.String())
}
