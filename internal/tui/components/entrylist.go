package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beantownbytes/menuentry/internal/desktop"
	"github.com/beantownbytes/menuentry/internal/tui/styles"
)

const idColumnWidth = 28

// EntryList is a scrollable, filterable list of desktop entries.
type EntryList struct {
	entries     []*desktop.Entry
	visible     []*desktop.Entry
	filter      string
	showHidden  bool
	selected    int
	height      int
	width       int
	scrollStart int
}

// NewEntryList creates a new EntryList component.
func NewEntryList() *EntryList {
	return &EntryList{height: 10}
}

// SetEntries replaces the listed entries, keeping the selection on the same
// key when it is still listed.
func (l *EntryList) SetEntries(entries []*desktop.Entry) {
	var selectedID string
	if e := l.SelectedEntry(); e != nil {
		selectedID = e.ID
	}
	l.entries = entries
	l.apply()
	if selectedID != "" {
		l.SelectID(selectedID)
	}
}

// SetFilter shows only entries whose name or key contains filter,
// ignoring case.
func (l *EntryList) SetFilter(filter string) {
	l.filter = filter
	l.apply()
}

// Filter returns the current filter.
func (l *EntryList) Filter() string {
	return l.filter
}

// SetShowHidden controls whether NoDisplay and Hidden entries are listed.
func (l *EntryList) SetShowHidden(show bool) {
	l.showHidden = show
	l.apply()
}

// ShowHidden reports whether NoDisplay and Hidden entries are listed.
func (l *EntryList) ShowHidden() bool {
	return l.showHidden
}

// Len returns the number of visible entries.
func (l *EntryList) Len() int {
	return len(l.visible)
}

// apply recomputes the visible entries and clamps the selection.
func (l *EntryList) apply() {
	needle := strings.ToLower(l.filter)
	l.visible = make([]*desktop.Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if !l.showHidden && (e.NoDisplay || e.Hidden) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.ID), needle) {
			continue
		}
		l.visible = append(l.visible, e)
	}

	if l.selected >= len(l.visible) {
		l.selected = len(l.visible) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.updateScroll()
}

// SetSize sets both width and height.
func (l *EntryList) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.height < 1 {
		l.height = 1
	}
	l.updateScroll()
}

// Selected returns the index of the selected visible entry.
func (l *EntryList) Selected() int {
	return l.selected
}

// SelectedEntry returns the selected entry, or nil if nothing is listed.
func (l *EntryList) SelectedEntry() *desktop.Entry {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return nil
	}
	return l.visible[l.selected]
}

// SelectID moves the selection to the entry with the given key.
func (l *EntryList) SelectID(id string) bool {
	for i, e := range l.visible {
		if e.ID == id {
			l.selected = i
			l.updateScroll()
			return true
		}
	}
	return false
}

// MoveUp moves selection up.
func (l *EntryList) MoveUp() {
	if l.selected > 0 {
		l.selected--
		l.updateScroll()
	}
}

// MoveDown moves selection down.
func (l *EntryList) MoveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
		l.updateScroll()
	}
}

// GoToTop moves selection to the first entry.
func (l *EntryList) GoToTop() {
	l.selected = 0
	l.updateScroll()
}

// GoToBottom moves selection to the last entry.
func (l *EntryList) GoToBottom() {
	if len(l.visible) > 0 {
		l.selected = len(l.visible) - 1
		l.updateScroll()
	}
}

// updateScroll ensures the selected entry is visible.
func (l *EntryList) updateScroll() {
	if l.selected < l.scrollStart {
		l.scrollStart = l.selected
	}
	if l.selected >= l.scrollStart+l.height {
		l.scrollStart = l.selected - l.height + 1
	}
	if l.scrollStart < 0 {
		l.scrollStart = 0
	}
}

// Update handles keyboard events for navigation.
func (l *EntryList) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.GoToTop()
		case "end", "G":
			l.GoToBottom()
		}
	}
	return nil
}

// View renders the entry list.
func (l *EntryList) View() string {
	if len(l.visible) == 0 {
		text := "No entries"
		if l.filter != "" {
			text = fmt.Sprintf("No entries match %q", l.filter)
		}
		return lipgloss.NewStyle().
			Foreground(styles.Muted).
			Italic(true).
			Padding(1, 2).
			Render(text)
	}

	end := l.scrollStart + l.height
	if end > len(l.visible) {
		end = len(l.visible)
	}

	lines := make([]string, 0, end-l.scrollStart+2)
	if l.scrollStart > 0 {
		lines = append(lines, styles.MutedTextStyle.Render("  ↑ more above"))
	}
	for i := l.scrollStart; i < end; i++ {
		lines = append(lines, l.renderEntry(l.visible[i], i == l.selected))
	}
	if end < len(l.visible) {
		lines = append(lines, styles.MutedTextStyle.Render("  ↓ more below"))
	}

	return strings.Join(lines, "\n")
}

// renderEntry renders one row: cursor, provenance badge, key and name.
func (l *EntryList) renderEntry(e *desktop.Entry, isSelected bool) string {
	cursor := " "
	if isSelected {
		cursor = lipgloss.NewStyle().
			Foreground(styles.Secondary).
			Bold(true).
			Render("▶")
	}

	line := fmt.Sprintf("%s %s %s %s",
		cursor,
		badge(e),
		styles.EntryIDStyle.Width(idColumnWidth).Render(truncateString(e.ID, idColumnWidth-1)),
		styles.EntryNameStyle.Render(e.Name),
	)
	if e.NoDisplay || e.Hidden {
		line += " " + styles.HiddenMarker
	}

	lineStyle := lipgloss.NewStyle()
	if isSelected {
		lineStyle = styles.SelectedLineStyle
	}
	if l.width > 0 {
		lineStyle = lineStyle.Width(l.width)
	}
	return lineStyle.Render(line)
}

func badge(e *desktop.Entry) string {
	switch {
	case e.IsSystem():
		return styles.BadgeSystem
	case e.IsNew():
		return styles.BadgeNew
	default:
		return styles.BadgeUser
	}
}

// truncateString shortens s to maxLen runes, marking the cut with "…".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
