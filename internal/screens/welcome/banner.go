package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

// cardArt is a quiz card with four answer slots.
const cardArt = `╭─────────────────╮
│   ?   ?   ?     │
│  ─────────────  │
│  (a)  (b)       │
│  (c)  (d)       │
╰─────────────────╯`

const (
	bannerWide    = "Q U I Z C R A F T E R   A I"
	bannerCompact = "QuizCrafter AI"
	tagline       = "Any subject. Any topic. One quiz away."
)

// RenderBanner returns the app name styled in the primary color, with a
// compact fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerWide)
}
