package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/ui/theme"
)

// ProgressBar renders a horizontal accuracy bar with an optional label
// and percentage readout.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar. Percent is clamped to [0, 1].
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	out := ""
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	readout := ""
	if p.ShowPercent {
		readout = fmt.Sprintf("  %3d%%", int(p.Percent*100+0.5))
	}

	barWidth := p.Width - lipgloss.Width(out) - lipgloss.Width(readout)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth)*p.Percent + 0.5)
	if filled > barWidth {
		filled = barWidth
	}

	out += theme.ProgressFilled.Render(repeatSpace(filled))
	out += theme.ProgressEmpty.Render(repeatSpace(barWidth - filled))
	if readout != "" {
		out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(readout)
	}
	return out
}

func repeatSpace(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
