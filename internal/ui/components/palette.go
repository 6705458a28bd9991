package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/ui/theme"
)

// PaletteCell is one question slot in the answer palette.
type PaletteCell struct {
	Status     exam.AnswerStatus
	Bookmarked bool
	Loaded     bool
}

// Palette is the question-number grid showing per-question status at a
// glance, mirroring the paper exam's answer sheet.
type Palette struct {
	Cells   []PaletteCell
	Current int
	PerRow  int
}

// NewPalette creates a palette with the default row width.
func NewPalette(cells []PaletteCell, current int) Palette {
	return Palette{Cells: cells, Current: current, PerRow: 10}
}

// View renders the numbered grid.
func (p Palette) View() string {
	perRow := p.PerRow
	if perRow <= 0 {
		perRow = 10
	}

	var b strings.Builder
	for i, cell := range p.Cells {
		label := fmt.Sprintf(" %2d ", i+1)
		if cell.Bookmarked {
			label = fmt.Sprintf("*%2d ", i+1)
		}
		b.WriteString(p.cellStyle(i, cell).Render(label))
		if (i+1)%perRow == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p Palette) cellStyle(i int, cell PaletteCell) lipgloss.Style {
	if i == p.Current {
		return theme.PaletteCurrent
	}
	if !cell.Loaded {
		return theme.PaletteNotVisited
	}
	switch cell.Status {
	case exam.StatusAnswered:
		return theme.PaletteAnswered
	case exam.StatusNotAnswered:
		return theme.PaletteNotAnswered
	case exam.StatusMarkedForReview, exam.StatusAnsweredAndMarked:
		return theme.PaletteMarked
	default:
		return theme.PaletteNotVisited
	}
}

// Legend renders the palette color key.
func Legend() string {
	entries := []struct {
		style lipgloss.Style
		label string
	}{
		{theme.PaletteAnswered, "Answered"},
		{theme.PaletteNotAnswered, "Not answered"},
		{theme.PaletteMarked, "Marked"},
		{theme.PaletteNotVisited, "Not visited"},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.style.Render("  ")+" "+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(e.label))
	}
	return strings.Join(parts, "   ")
}
