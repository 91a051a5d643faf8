// Package setup is the screen where the user picks subject, topic and
// difficulty and generates a quiz.
package setup

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screen"
	"github.com/abhisek/quizcrafter/internal/screens/question"
	"github.com/abhisek/quizcrafter/internal/service"
	"github.com/abhisek/quizcrafter/internal/ui/components"
	"github.com/abhisek/quizcrafter/internal/ui/layout"
	"github.com/abhisek/quizcrafter/internal/ui/theme"
)

type field int

const (
	fieldSubject field = iota
	fieldTopic
	fieldDifficulty
	fieldGenerate
	fieldCount
)

// generatedMsg carries the result of an asynchronous Generate call.
type generatedMsg struct {
	Session quiz.Session
	Err     error
}

// SetupScreen collects the quiz parameters.
type SetupScreen struct {
	svc   screen.QuizService
	token string

	subject    components.TextInput
	topic      components.TextInput
	difficulty int
	focus      field

	generating bool
	pending    quizgen.Request
	spin       spinner.Model
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen generating quizzes for token.
func New(svc screen.QuizService, token string) *SetupScreen {
	s := &SetupScreen{
		svc:     svc,
		token:   token,
		subject: components.NewTextInput("Subject", "e.g. Mathematics", 80),
		topic:   components.NewTextInput("Topic", "e.g. Fractions", 80),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	return s
}

// Init focuses the first field. Values typed earlier are kept so a
// restarted quiz can reuse them.
func (s *SetupScreen) Init() tea.Cmd {
	s.generating = false
	return s.setFocus(fieldSubject)
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
	}
	if s.focus == fieldDifficulty {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Difficulty"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Generate"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

// Request returns the parameters currently entered.
func (s *SetupScreen) Request() quizgen.Request {
	return quizgen.Request{
		Subject:    s.subject.Value(),
		Topic:      s.topic.Value(),
		Difficulty: quizgen.Difficulties[s.difficulty],
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.generating {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, s.forward(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focus == fieldSubject || s.focus == fieldTopic {
			return s, s.setFocus(s.focus + 1)
		}
		return s, s.generate()
	}

	if s.focus == fieldDifficulty {
		switch msg.String() {
		case "left", "h":
			if s.difficulty > 0 {
				s.difficulty--
			}
		case "right", "l":
			if s.difficulty < len(quizgen.Difficulties)-1 {
				s.difficulty++
			}
		case "1", "2", "3":
			s.difficulty = int(msg.String()[0] - '1')
		}
		return s, nil
	}

	return s, s.forward(msg)
}

// forward passes msg to the focused text input.
func (s *SetupScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldSubject:
		s.subject, cmd = s.subject.Update(msg)
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	}
	return cmd
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.subject.Blur()
	s.topic.Blur()
	switch f {
	case fieldSubject:
		return s.subject.Focus()
	case fieldTopic:
		return s.topic.Focus()
	}
	return nil
}

// generate validates the form and starts generation in the background.
func (s *SetupScreen) generate() tea.Cmd {
	req := s.Request()
	if err := req.Validate(); err != nil {
		s.errMsg = service.UserMessage(err)
		return nil
	}

	s.errMsg = ""
	s.generating = true
	s.pending = req
	svc, token := s.svc, s.token
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		sess, err := svc.Generate(context.Background(), token, req)
		return generatedMsg{Session: sess, Err: err}
	})
}

func (s *SetupScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	if msg.Err != nil {
		s.errMsg = service.UserMessage(msg.Err)
		return s, nil
	}
	next := question.New(s.svc, s.token, msg.Session)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.generating {
		line := s.spin.View() + " " + service.GeneratingLine(s.pending)
		return components.Center(components.Card(theme.Body.Render(line), cw), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(service.AppTitle))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Generate a 20 question quiz on any topic"))
	b.WriteString("\n\n")
	b.WriteString(s.subject.View())
	b.WriteString("\n\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")
	b.WriteString(s.difficultyView())
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Generate Quiz", s.focus == fieldGenerate).View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(cw - 6).Render(s.errMsg))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}

func (s *SetupScreen) difficultyView() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.focus == fieldDifficulty {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	var opts []string
	for i, d := range quizgen.Difficulties {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
		if i == s.difficulty {
			style = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Secondary).Bold(true).Padding(0, 1)
		}
		opts = append(opts, style.Render(string(d)))
	}
	return label.Render("Difficulty") + "\n" + strings.Join(opts, " ")
}
