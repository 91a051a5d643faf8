// Package summary shows the final score of a finished quiz.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screen"
	"github.com/abhisek/quizcrafter/internal/service"
	"github.com/abhisek/quizcrafter/internal/ui/components"
	"github.com/abhisek/quizcrafter/internal/ui/layout"
	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

// SummaryScreen displays the final score and offers a restart.
type SummaryScreen struct {
	svc    screen.QuizService
	token  string
	sess   quiz.Session
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a finished session.
func New(svc screen.QuizService, token string, sess quiz.Session) *SummaryScreen {
	s := &SummaryScreen{svc: svc, token: token, sess: sess}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: service.MsgRestart, Action: s.restart},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Restart"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		return s, s.restart()
	case "q":
		return s, tea.Quit
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// restart discards the session and returns to the setup screen.
func (s *SummaryScreen) restart() tea.Cmd {
	if _, err := s.svc.Reset(context.Background(), s.token); err != nil {
		s.errMsg = service.UserMessage(err)
		return nil
	}
	return tea.Batch(
		func() tea.Msg { return screen.ScoreMsg{} },
		func() tea.Msg { return router.PopToRootMsg{} },
	)
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sum := s.sess.Summary()

	var b strings.Builder
	b.WriteString(theme.Title.Render(service.MsgFinished))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(service.ScoreLine(s.sess)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(sum.Percent/100, true, cw-6).View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · %s · %s", s.sess.Subject, s.sess.Topic, s.sess.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}
