// Package styles provides Lip Gloss styles for the menuentry TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	Primary     = lipgloss.Color("#2563EB")
	Secondary   = lipgloss.Color("#14B8A6")
	Success     = lipgloss.Color("#22C55E")
	Warning     = lipgloss.Color("#EAB308")
	Error       = lipgloss.Color("#DC2626")
	Muted       = lipgloss.Color("#64748B")
	MutedLight  = lipgloss.Color("#94A3B8")
	Background  = lipgloss.Color("#1E293B")
	Foreground  = lipgloss.Color("#F8FAFC")
	BorderColor = lipgloss.Color("#334155")
)

// Header.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground).
			Background(Primary).
			Padding(0, 1)

	HeaderLabelStyle = lipgloss.NewStyle().Foreground(MutedLight)
	HeaderValueStyle = lipgloss.NewStyle().Foreground(Foreground).Bold(true)

	// TitleStyle renders the program name at the left of the header.
	TitleStyle = HeaderStyle
)

// Entry list. The badges are pre-rendered since every row uses them.
var (
	BadgeSystem = lipgloss.NewStyle().Foreground(Warning).Render("S")
	BadgeUser   = lipgloss.NewStyle().Foreground(Success).Render("U")
	BadgeNew    = lipgloss.NewStyle().Foreground(Secondary).Render("+")

	// HiddenMarker flags entries launchers will not show.
	HiddenMarker = lipgloss.NewStyle().Foreground(Muted).Render("(hidden)")

	EntryIDStyle   = lipgloss.NewStyle().Foreground(MutedLight)
	EntryNameStyle = lipgloss.NewStyle().Foreground(Foreground)

	SelectedLineStyle = lipgloss.NewStyle().
				Background(Background).
				Bold(true)
)

// FocusedBoxStyle frames the editor and dialogs.
var FocusedBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1)

// Text.
var (
	MutedTextStyle   = lipgloss.NewStyle().Foreground(Muted)
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
)

// Status bar and shortcut hints.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	KeyStyle  = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpStyle = lipgloss.NewStyle().Foreground(Muted)
)

// Editor form.
var (
	FormTitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true).
			Padding(0, 1)

	FormLabelStyle        = lipgloss.NewStyle().Foreground(MutedLight)
	FormLabelFocusedStyle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	FormInputStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	FormInputFocusedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Background).
				Padding(0, 1)

	CheckboxCheckedStyle   = lipgloss.NewStyle().Foreground(Success)
	CheckboxUncheckedStyle = lipgloss.NewStyle().Foreground(Muted)
)

// Buttons. The focused variant is filled, the unfocused one outlined.
var (
	ButtonPrimaryStyle          = filledButton(Background, Primary)
	ButtonPrimaryUnfocusedStyle = outlinedButton(Primary, Primary)

	ButtonSecondaryStyle          = filledButton(Background, Secondary)
	ButtonSecondaryUnfocusedStyle = outlinedButton(MutedLight, Muted)

	ButtonDangerStyle          = filledButton(Foreground, Error)
	ButtonDangerUnfocusedStyle = outlinedButton(Error, Error)
)

func filledButton(fg, bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Bold(true).
		Padding(0, 2)
}

func outlinedButton(fg, border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(fg).
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
