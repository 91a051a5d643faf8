package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

// ProgressBar draws a fraction in [0, 1] as a filled bar of Width cells,
// optionally followed by the percentage.
type ProgressBar struct {
	Fraction    float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(fraction float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Fraction: fraction, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	bar := p.Width
	if p.ShowPercent {
		bar -= 6
	}
	bar = max(bar, 4)

	f := min(max(p.Fraction, 0), 1)
	filled := int(float64(bar) * f)

	out := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled))
	if p.ShowPercent {
		out += theme.Hint.Render(fmt.Sprintf(" %3d%%", int(f*100)))
	}
	return out
}
