package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screen"
	"github.com/abhisek/quizcrafter/internal/screens/setup"
	"github.com/abhisek/quizcrafter/internal/screens/welcome"
	"github.com/abhisek/quizcrafter/internal/ui/layout"
)

// LocalToken identifies the terminal user's session.
const LocalToken = "local"

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	score  *screen.ScoreMsg
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome splash, which
// gives way to the setup screen.
func newAppModel(svc screen.QuizService) AppModel {
	intro := welcome.New(func() screen.Screen {
		return setup.New(svc, LocalToken)
	})
	return AppModel{
		router: router.New(intro),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ScoreMsg:
		if msg.Total == 0 {
			m.score = nil
		} else {
			m.score = &msg
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				m.score = nil
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.score != nil {
		status = fmt.Sprintf("Score %d/%d", m.score.Score, m.score.Total)
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(svc screen.QuizService) error {
	p := tea.NewProgram(newAppModel(svc))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
