package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// OptionList renders the answer options of one question. During the
// exam only the candidate's selection is highlighted; in review mode
// the correct option and a wrong pick are revealed.
type OptionList struct {
	Options    []string
	Selected   int // candidate's recorded choice, -1 for none
	Cursor     int // keyboard focus during the exam
	Review     bool
	CorrectIdx int
	ShowCursor bool
}

// View renders the option rows.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		if i >= len(optionLabels) {
			break
		}
		prefix := "  "
		if o.ShowCursor && i == o.Cursor {
			prefix = "▸ "
		}
		marker := "( )"
		if i == o.Selected {
			marker = "(●)"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, optionLabels[i], opt)

		s += o.styleFor(i).Render(line) + "\n"
	}
	return s
}

func (o OptionList) styleFor(i int) lipgloss.Style {
	if o.Review {
		switch {
		case i == o.CorrectIdx:
			return theme.Correct
		case i == o.Selected:
			return theme.Incorrect
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}
	switch {
	case i == o.Selected:
		return theme.Selected
	case o.ShowCursor && i == o.Cursor:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	default:
		return theme.Unselected
	}
}
