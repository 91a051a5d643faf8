// Package screen defines what the router needs from a terminal screen and
// the quiz operations screens call into.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcrafter/internal/ui/layout"
)

// Screen is one page of the terminal UI. View renders only the area
// between header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
