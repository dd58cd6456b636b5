package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eldrige/skillsassess/internal/ui/theme"
)

// ScoreBar displays a horizontal percentage bar colored by the score
// thresholds (red below 40, yellow below 70, green at 70 and above).
type ScoreBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, percent int, showPercent bool, width int) ScoreBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return ScoreBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * p.Percent / 100
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.ScoreColor(p.Percent)).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", p.Percent))
	}

	return result
}
