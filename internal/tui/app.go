// Package tui provides the terminal user interface for menuentry.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/desktop"
	"github.com/beantownbytes/menuentry/internal/hooks"
	"github.com/beantownbytes/menuentry/internal/logging"
	"github.com/beantownbytes/menuentry/internal/store"
	"github.com/beantownbytes/menuentry/internal/tui/components"
	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

// EntryStore is the part of the entry store the TUI drives.
type EntryStore interface {
	LoadAll() ([]*desktop.Entry, error)
	Refresh() ([]*desktop.Entry, error)
	Entries() []*desktop.Entry
	Save(e *desktop.Entry) (string, error)
	Delete(e *desktop.Entry) error
	Failures() []store.ParseFailure
}

// HookRunner runs the post-write hooks.
type HookRunner interface {
	HasHooks() bool
	Run(ctx context.Context, hc *hooks.Context) []*hooks.Result
}

// Options configures the TUI.
type Options struct {
	// UserDir is shown in the header.
	UserDir string
	// ShowHidden lists NoDisplay and Hidden entries from the start.
	ShowHidden bool
	// ConfirmDelete asks before deleting a user entry.
	ConfirmDelete bool
	// Changes signals that the entry directories changed on disk; each
	// signal reloads the listing. Nil disables auto-refresh.
	Changes <-chan struct{}
	// Hooks run after every successful save or delete; nil runs none.
	Hooks HookRunner
	// Logger receives UI-level events; nil disables logging.
	Logger *logging.Logger
}

// Model is the Bubble Tea model for the entry browser.
type Model struct {
	store  EntryStore
	opts   Options
	logger *logging.Logger
	keys   KeyMap

	// Components
	header      *components.Header
	list        *components.EntryList
	editor      *components.EntryEditor
	statusBar   *components.StatusBar
	helpOverlay *components.HelpOverlay
	confirmDlg  *components.ConfirmDialog
	filterInput *components.TextInput

	// State
	filtering     bool
	pendingDelete *desktop.Entry
	failures      int

	// Window dimensions
	width  int
	height int

	quitting bool
}

// New creates a new TUI model over s.
func New(s EntryStore, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoop()
	}

	list := components.NewEntryList()
	list.SetShowHidden(opts.ShowHidden)

	header := components.NewHeader()
	header.SetData(components.HeaderData{UserDir: opts.UserDir})

	return &Model{
		store:       s,
		opts:        opts,
		logger:      logger,
		keys:        DefaultKeyMap(),
		header:      header,
		list:        list,
		editor:      components.NewEntryEditor(),
		statusBar:   components.NewStatusBar(),
		helpOverlay: components.NewHelpOverlay(),
		confirmDlg:  components.NewConfirmDialog(),
		filterInput: components.NewTextInput("filter", "Filter"),
	}
}

// Init loads the listing and, when configured, starts waiting for changes.
func (m *Model) Init() tea.Cmd {
	if m.opts.Changes == nil {
		return m.loadCmd(false, false)
	}
	return tea.Batch(m.loadCmd(false, false), m.waitForChange())
}

// loadCmd loads the listing. auto marks reloads triggered by the watcher.
func (m *Model) loadCmd(refresh, auto bool) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		load := s.LoadAll
		if refresh {
			load = s.Refresh
		}
		entries, err := load()
		return EntriesLoadedMsg{
			Entries:  entries,
			Failures: len(s.Failures()),
			Refresh:  refresh,
			Auto:     auto,
			Err:      err,
		}
	}
}

// waitForChange blocks until the next change signal. A closed channel ends
// the wait without a message.
func (m *Model) waitForChange() tea.Cmd {
	changes := m.opts.Changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return DirChangedMsg{}
	}
}

func (m *Model) saveCmd(e *desktop.Entry) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		copied := e.IsSystem()
		path, err := s.Save(e)
		return EntrySavedMsg{Entry: e, Path: path, Copied: copied, Err: err}
	}
}

func (m *Model) deleteCmd(e *desktop.Entry) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return EntryDeletedMsg{Entry: e, Err: s.Delete(e)}
	}
}

// hooksCmd runs the post-write hooks for a write that just succeeded.
func (m *Model) hooksCmd(event hooks.Event, e *desktop.Entry, path string) tea.Cmd {
	runner := m.opts.Hooks
	if runner == nil || !runner.HasHooks() {
		return nil
	}
	hc := &hooks.Context{Event: event, EntryID: e.ID, Path: path, UserDir: m.opts.UserDir}
	return func() tea.Msg {
		return HooksRanMsg{Event: event, Results: runner.Run(context.Background(), hc)}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case EntriesLoadedMsg:
		return m.handleLoaded(msg)

	case DirChangedMsg:
		m.logger.Debug("entry directories changed, reloading")
		return m, tea.Batch(m.loadCmd(true, true), m.waitForChange())

	case EntrySavedMsg:
		return m.handleSaved(msg)

	case EntryDeletedMsg:
		return m.handleDeleted(msg)

	case HooksRanMsg:
		if failed := hooks.FirstFailure(msg.Results); failed != nil {
			m.statusBar.SetMessage(failed.Summary(), components.MessageError)
		}
		return m, nil

	case components.EditorSubmitMsg:
		return m, m.saveCmd(msg.Entry)

	case components.EditorCancelMsg:
		if msg.Dirty {
			m.confirmDlg.ShowDiscard()
			return m, nil
		}
		m.closeEditor()
		return m, nil

	case components.ConfirmYesMsg:
		return m.handleConfirmYes(msg.Action)

	case components.ConfirmNoMsg:
		m.pendingDelete = nil
		return m, nil

	case components.HelpClosedMsg:
		return m, nil
	}

	// Overlays capture input while visible.
	if m.confirmDlg.IsVisible() {
		return m, m.confirmDlg.Update(msg)
	}
	if m.helpOverlay.IsVisible() {
		return m, m.helpOverlay.Update(msg)
	}
	if m.editor.IsActive() {
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.editor.Update(msg)
	}
	if m.filtering {
		return m.updateFilter(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.list.SetSize(width, m.listHeight())
	m.editor.SetSize(width, height-2)
	m.filterInput.SetWidth(width)
	m.helpOverlay.SetSize(60, 30)
	m.confirmDlg.SetSize(60)
}

// listHeight is the height left for rows after header, divider, filter
// line and status bar.
func (m *Model) listHeight() int {
	h := m.height - 3
	if m.filtering {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// handleKeyPress handles keyboard input on the entry list.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.Top), key.Matches(msg, m.keys.Bottom):
		return m, m.list.Update(msg)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.list.Filter())
		m.statusBar.SetShortcuts(components.FilterShortcuts)
		m.list.SetSize(m.width, m.listHeight())
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.list.Filter() != "" {
			m.setFilter("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		e := m.list.SelectedEntry()
		if e == nil {
			return m, nil
		}
		return m, m.openEditor(e)

	case key.Matches(msg, m.keys.New):
		return m, m.openEditor(desktop.NewEntry())

	case key.Matches(msg, m.keys.Save):
		e := m.list.SelectedEntry()
		if e == nil {
			return m, nil
		}
		return m, m.saveCmd(e.Clone())

	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete()

	case key.Matches(msg, m.keys.Refresh):
		m.statusBar.SetMessage("Reloading...", components.MessageInfo)
		return m, m.loadCmd(true, false)

	case key.Matches(msg, m.keys.ShowHidden):
		m.list.SetShowHidden(!m.list.ShowHidden())
		if m.list.ShowHidden() {
			m.statusBar.SetMessage("Showing hidden entries", components.MessageInfo)
		} else {
			m.statusBar.SetMessage("Hiding hidden entries", components.MessageInfo)
		}
		return m, nil
	}

	return m, nil
}

// updateFilter handles input while the filter line is open; the list
// follows the typed text.
func (m *Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.endFilter()
			return m, nil
		case "esc":
			m.setFilter("")
			m.endFilter()
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	_, cmd := m.filterInput.Update(msg)
	m.setFilter(m.filterInput.Value())
	return m, cmd
}

func (m *Model) setFilter(filter string) {
	m.list.SetFilter(filter)
	m.statusBar.SetFilter(filter)
}

func (m *Model) endFilter() {
	m.filtering = false
	m.filterInput.Blur()
	m.statusBar.SetShortcuts(components.ListShortcuts)
	m.list.SetSize(m.width, m.listHeight())
}

func (m *Model) openEditor(e *desktop.Entry) tea.Cmd {
	m.statusBar.ClearMessage()
	m.statusBar.SetShortcuts(components.EditorShortcuts)
	return m.editor.Open(e)
}

func (m *Model) closeEditor() {
	m.editor.Close()
	m.statusBar.SetShortcuts(components.ListShortcuts)
}

func (m *Model) requestDelete() (tea.Model, tea.Cmd) {
	e := m.list.SelectedEntry()
	if e == nil {
		return m, nil
	}
	// The store refuses system entries; let it report why.
	if e.IsSystem() || !m.opts.ConfirmDelete {
		return m, m.deleteCmd(e.Clone())
	}
	m.pendingDelete = e.Clone()
	m.confirmDlg.ShowDelete(e.Name, e.Origin)
	return m, nil
}

// handleConfirmYes handles confirmed actions.
func (m *Model) handleConfirmYes(action components.ConfirmAction) (tea.Model, tea.Cmd) {
	switch action {
	case components.ConfirmActionDelete:
		e := m.pendingDelete
		m.pendingDelete = nil
		if e != nil {
			return m, m.deleteCmd(e)
		}
	case components.ConfirmActionDiscard:
		m.closeEditor()
	}
	return m, nil
}

func (m *Model) handleLoaded(msg EntriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error("failed to load entries", "error", msg.Err)
		m.statusBar.SetMessage(msg.Err.Error(), components.MessageError)
		return m, nil
	}

	m.failures = msg.Failures
	m.setEntries(msg.Entries)
	if msg.Auto {
		return m, nil
	}

	verb := "Loaded"
	if msg.Refresh {
		verb = "Reloaded"
	}
	text := fmt.Sprintf("%s %d entries", verb, len(msg.Entries))
	if msg.Failures > 0 {
		text += fmt.Sprintf(", skipped %d unreadable", msg.Failures)
		m.statusBar.SetMessage(text, components.MessageError)
	} else {
		m.statusBar.SetMessage(text, components.MessageInfo)
	}
	return m, nil
}

func (m *Model) handleSaved(msg EntrySavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("save failed", "id", msg.Entry.ID, "error", msg.Err)
		m.statusBar.SetMessage(firstLine(msg.Err.Error()), components.MessageError)
		if m.editor.IsActive() {
			return m, m.editor.SetError(msg.Err)
		}
		return m, nil
	}

	if m.editor.IsActive() {
		m.closeEditor()
	}
	m.setEntries(m.store.Entries())
	m.list.SelectID(msg.Entry.ID)

	if msg.Copied {
		m.statusBar.SetMessage("Copied system entry to "+msg.Path, components.MessageSuccess)
	} else {
		m.statusBar.SetMessage("Saved "+msg.Path, components.MessageSuccess)
	}
	return m, m.hooksCmd(hooks.EventSave, msg.Entry, msg.Path)
}

func (m *Model) handleDeleted(msg EntryDeletedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
		m.statusBar.SetMessage("Deleted "+msg.Entry.Origin, components.MessageSuccess)
	case store.IsIdempotent(msg.Err):
		m.statusBar.SetMessage(msg.Entry.ID+" was already deleted", components.MessageInfo)
	default:
		m.logger.Warn("delete failed", "id", msg.Entry.ID, "error", msg.Err)
		m.statusBar.SetMessage(firstLine(msg.Err.Error()), components.MessageError)
		return m, nil
	}

	m.setEntries(m.store.Entries())
	if msg.Err != nil {
		return m, nil
	}
	return m, m.hooksCmd(hooks.EventDelete, msg.Entry, msg.Entry.Origin)
}

// setEntries updates the list and the header counts.
func (m *Model) setEntries(entries []*desktop.Entry) {
	m.list.SetEntries(entries)

	data := components.HeaderData{
		UserDir:  m.opts.UserDir,
		Entries:  len(entries),
		Failures: m.failures,
	}
	for _, e := range entries {
		if e.IsSystem() {
			data.System++
		} else {
			data.User++
		}
	}
	m.header.SetData(data)
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header.View())
	b.WriteString("\n")

	if m.editor.IsActive() {
		b.WriteString(m.editor.View())
	} else {
		if m.width > 0 {
			b.WriteString(lipgloss.NewStyle().
				Foreground(styles.BorderColor).
				Render(strings.Repeat("─", m.width)))
		}
		b.WriteString("\n")
		b.WriteString(m.list.View())
		if m.filtering {
			b.WriteString("\n")
			b.WriteString(m.filterInput.View())
		}
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	view := b.String()
	if m.helpOverlay.IsVisible() {
		view = m.renderOverlay(view, m.helpOverlay.View())
	}
	if m.confirmDlg.IsVisible() {
		view = m.renderOverlay(view, m.confirmDlg.View())
	}
	return view
}

// renderOverlay places an overlay in the middle of the screen. Without a
// known window size it is appended below the base view.
func (m *Model) renderOverlay(base, overlay string) string {
	if m.width == 0 || m.height == 0 {
		return base + "\n" + overlay
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(s EntryStore, opts Options) error {
	p := tea.NewProgram(New(s, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
