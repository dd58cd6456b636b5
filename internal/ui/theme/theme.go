package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: the SkillsAssess green brand on a dark terminal ground.
var (
	Primary   = lipgloss.Color("#16A34A") // Brand Green
	Secondary = lipgloss.Color("#0D9488") // Teal
	Accent    = lipgloss.Color("#2563EB") // Blue
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
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

// ScoreColor maps a percentage to the threshold colors used everywhere
// scores and proficiency bars render.
func ScoreColor(pct int) color.Color {
	switch {
	case pct < 40:
		return Error
	case pct < 70:
		return Warning
	default:
		return Success
	}
}
