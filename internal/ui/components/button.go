package components

import (
	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

// Button renders a single action. Key handling belongs to the owning
// screen, which decides what focus means.
type Button struct {
	Label  string
	Active bool
}

func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render(theme.Marker + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
