package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector over options that already
// carry their identifier, e.g. "a: Paris".
type MultiChoice struct {
	Question string
	Options  []string

	// Selected is the highlighted option, -1 until the user moves.
	Selected    int
	Submitted   bool
	ChosenIndex int

	// CorrectIndex is -1 until Reveal is called.
	CorrectIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		Selected:     -1,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Digits 1-4 and the
// option identifiers move the cursor directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		} else if m.Selected < 0 && len(m.Options) > 0 {
			m.Selected = 0
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submit()
	default:
		if i := m.indexForKey(key); i >= 0 {
			m.Selected = i
		}
	}

	return m, nil
}

func (m MultiChoice) indexForKey(key string) int {
	if len(key) != 1 {
		return -1
	}
	if key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(m.Options) {
			return i
		}
		return -1
	}
	for i, o := range m.Options {
		if quizgen.Label(o) == key {
			return i
		}
	}
	return -1
}

// Current returns the highlighted option text, or "" if none.
func (m MultiChoice) Current() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Submit locks in the highlighted option. It is a no-op without one.
func (m *MultiChoice) Submit() {
	if m.Submitted || m.Current() == "" {
		return
	}
	m.Submitted = true
	m.ChosenIndex = m.Selected
}

// Chosen returns the submitted option text, or "" before submission.
func (m MultiChoice) Chosen() string {
	if !m.Submitted || m.ChosenIndex < 0 {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal marks the option with the given identifier as correct.
func (m *MultiChoice) Reveal(correctOption string) {
	m.CorrectIndex = -1
	want := quizgen.Label(correctOption)
	for i, o := range m.Options {
		if quizgen.Label(o) == want {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = theme.Marker
		}
		line := prefix + opt

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// IsCorrect reports whether the chosen option is the revealed one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.CorrectIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}
