package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Pink-forward, matching the worksheet branding.
var (
	Primary   = lipgloss.Color("#FF69B4") // Hot Pink
	Secondary = lipgloss.Color("#DA70D6") // Orchid
	Accent    = lipgloss.Color("#FFB6C1") // Light Pink
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#FDF2F8") // Blush White
	TextDim   = lipgloss.Color("#A78BA3") // Mauve
	BgDark    = lipgloss.Color("#1A0E16") // Deep Plum
	BgCard    = lipgloss.Color("#2B1A26") // Dark Plum
	Border    = lipgloss.Color("#4A3342") // Dusty Plum
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
