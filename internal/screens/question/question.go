// Package question shows one quiz question at a time and applies answers.
package question

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screen"
	"github.com/abhisek/quizcrafter/internal/screens/summary"
	"github.com/abhisek/quizcrafter/internal/service"
	"github.com/abhisek/quizcrafter/internal/ui/components"
	"github.com/abhisek/quizcrafter/internal/ui/layout"
	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

// feedbackDoneMsg ends the feedback pause for the answer with the same seq.
type feedbackDoneMsg struct {
	seq int
}

// QuestionScreen presents the current question of a session.
type QuestionScreen struct {
	svc   screen.QuizService
	token string
	sess  quiz.Session
	mc    components.MultiChoice

	showingFeedback bool
	feedback        string
	correct         bool
	seq             int

	warning string
	errMsg  string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// New creates a QuestionScreen for an in-progress session.
func New(svc screen.QuizService, token string, sess quiz.Session) *QuestionScreen {
	s := &QuestionScreen{svc: svc, token: token, sess: sess}
	s.loadQuestion()
	return s
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.scoreCmd()
}

func (s *QuestionScreen) Title() string {
	return s.sess.Subject + " · " + s.sess.Topic
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	if s.showingFeedback {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓/a-d", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

// Session returns the session as last seen by the screen.
func (s *QuestionScreen) Session() quiz.Session {
	return s.sess
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if !s.showingFeedback || msg.seq != s.seq {
			return s, nil
		}
		return s.advance()

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if s.showingFeedback {
			return s.advance()
		}
		if msg.String() == "enter" {
			return s.submit()
		}
		s.warning = ""
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuestionScreen) submit() (screen.Screen, tea.Cmd) {
	next, out, err := s.svc.Submit(context.Background(), s.token, s.sess.ID, s.sess.CurrentIndex, s.mc.Current())
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		s.warning = service.UserMessage(err)
		return s, nil
	case err != nil:
		s.errMsg = service.UserMessage(err)
		return s, nil
	}

	s.sess = next
	s.mc.Submit()
	s.mc.Reveal(out.CorrectOption)
	s.showingFeedback = true
	s.correct = out.Correct
	s.feedback = service.Feedback(out)
	s.warning = ""
	s.seq++

	seq := s.seq
	return s, tea.Batch(
		s.scoreCmd(),
		tea.Tick(s.svc.FeedbackDelay(), func(time.Time) tea.Msg { return feedbackDoneMsg{seq: seq} }),
	)
}

// advance leaves the feedback view for the next question or the summary.
func (s *QuestionScreen) advance() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	if s.sess.State() == quiz.Finished {
		next := summary.New(s.svc, s.token, s.sess)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	s.loadQuestion()
	return s, nil
}

func (s *QuestionScreen) loadQuestion() {
	q, ok := s.sess.Current()
	if !ok {
		s.mc = components.NewMultiChoice("", nil)
		return
	}
	s.mc = components.NewMultiChoice(q.Text, q.Options)
}

func (s *QuestionScreen) scoreCmd() tea.Cmd {
	score := screen.ScoreMsg{Score: s.sess.Score, Total: s.sess.Total()}
	return func() tea.Msg { return score }
}

func (s *QuestionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.errMsg != "" {
		body := theme.ErrorText.Width(cw - 6).Render(s.errMsg) +
			"\n\n" + theme.Hint.Render("press any key to go back")
		return components.Center(components.Card(body, cw), width, height)
	}

	var b strings.Builder

	// Progress refers to the question on screen, which during feedback is
	// the one just answered.
	shown := s.sess
	if s.showingFeedback {
		shown.CurrentIndex--
	}
	b.WriteString(theme.Subtitle.Render(service.Progress(shown)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(float64(shown.CurrentIndex)/float64(max(shown.Total(), 1)), false, cw-6).View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("Question %d:", shown.CurrentIndex+1)))
	b.WriteString("\n")
	b.WriteString(s.mc.View())

	switch {
	case s.showingFeedback:
		color := theme.Error
		if s.correct {
			color = theme.Success
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(s.feedback))
	case s.warning != "":
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(s.warning))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}
