package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/eldrige/skillsassess/internal/ui/theme"
)

// OptionList renders an answer option list for one question. Selection
// state is owned by the caller: Cursor is the highlighted row, Chosen is
// the index already locked in for this question (-1 for none).
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewOptionList creates an option list with nothing chosen.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options, Chosen: -1}
}

// MoveUp moves the highlight up one row.
func (o *OptionList) MoveUp() {
	if o.Cursor > 0 {
		o.Cursor--
	}
}

// MoveDown moves the highlight down one row.
func (o *OptionList) MoveDown() {
	if o.Cursor < len(o.Options)-1 {
		o.Cursor++
	}
}

// Choose locks in the option at idx. Out-of-range indices are ignored.
func (o *OptionList) Choose(idx int) {
	if idx >= 0 && idx < len(o.Options) {
		o.Cursor = idx
		o.Chosen = idx
	}
}

// View renders the options.
func (o OptionList) View(width int) string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "> "
		}
		marker := "( )"
		if i == o.Chosen {
			marker = "(•)"
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, marker, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == o.Chosen {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		if i == o.Cursor {
			style = style.Bold(true)
			if i != o.Chosen {
				style = style.Foreground(theme.Primary)
			}
		}
		s += style.Render(line) + "\n"
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
