package setup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screens/question"
)

type fakeService struct {
	requests []quizgen.Request
	err      error
}

func (f *fakeService) Generate(_ context.Context, _ string, req quizgen.Request) (quiz.Session, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return quiz.Session{}, f.err
	}
	q := quizgen.Question{Text: "2+2?", Options: []string{"a: 3", "b: 4", "c: 5", "d: 6"}, CorrectOption: "b"}
	return quiz.Start(quiz.Meta{ID: "s-1", Subject: req.Subject, Topic: req.Topic, Difficulty: req.Difficulty}, []quizgen.Question{q})
}

func (f *fakeService) Submit(context.Context, string, string, int, string) (quiz.Session, quiz.Outcome, error) {
	return quiz.Session{}, quiz.Outcome{}, nil
}

func (f *fakeService) Reset(context.Context, string) (quiz.Session, error) {
	return quiz.Reset(), nil
}

func (f *fakeService) FeedbackDelay() time.Duration { return 0 }

func typeText(s *SetupScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(svc *fakeService) *SetupScreen {
	s := New(svc, "local")
	s.Init()
	return s
}

// generatedFrom runs the generation command and returns its result.
func generatedFrom(t *testing.T, cmd tea.Cmd) generatedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batch of spinner and generation")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(generatedMsg); ok {
			return msg
		}
	}
	t.Fatal("no generatedMsg in batch")
	return generatedMsg{}
}

func TestSetupScreen_GeneratePushesQuestion(t *testing.T) {
	svc := &fakeService{}
	s := newScreen(svc)

	typeText(s, "Math")
	s.Update(key(tea.KeyEnter))
	typeText(s, "Arithmetic")
	s.Update(key(tea.KeyEnter))
	s.Update(key(tea.KeyRight))
	s.Update(key(tea.KeyRight))
	s.Update(key(tea.KeyTab))

	req := s.Request()
	if req.Subject != "Math" || req.Topic != "Arithmetic" || req.Difficulty != quizgen.Hard {
		t.Fatalf("request = %+v", req)
	}

	_, cmd := s.Update(key(tea.KeyEnter))
	if !s.generating {
		t.Fatal("expected the generating state")
	}
	if !strings.Contains(s.View(80, 24), "Generating quiz for Math on Arithmetic at Hard difficulty...") {
		t.Error("generating line not rendered")
	}

	// Keys are ignored while generating.
	typeText(s, "zzz")
	if s.Request().Subject != "Math" {
		t.Error("input changed while generating")
	}

	msg := generatedFrom(t, cmd)
	_, cmd = s.Update(msg)
	if s.generating {
		t.Error("still generating after the result arrived")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected router.PushScreenMsg")
	}
	qs, ok := push.Screen.(*question.QuestionScreen)
	if !ok {
		t.Fatalf("pushed %T, want *question.QuestionScreen", push.Screen)
	}
	if qs.Session().State() != quiz.InProgress {
		t.Errorf("state = %s, want in_progress", qs.Session().State())
	}
	if len(svc.requests) != 1 {
		t.Errorf("generate calls = %d, want 1", len(svc.requests))
	}
}

func TestSetupScreen_MissingFields(t *testing.T) {
	svc := &fakeService{}
	s := newScreen(svc)

	typeText(s, "Math")
	s.Update(key(tea.KeyTab))
	s.Update(key(tea.KeyTab))
	s.Update(key(tea.KeyTab))
	_, cmd := s.Update(key(tea.KeyEnter))

	if cmd != nil {
		t.Error("expected no command for invalid input")
	}
	if s.errMsg != quizgen.MsgMissingSubjectTopic {
		t.Errorf("errMsg = %q, want %q", s.errMsg, quizgen.MsgMissingSubjectTopic)
	}
	if len(svc.requests) != 0 {
		t.Error("generator called for invalid input")
	}
}

func TestSetupScreen_GenerationError(t *testing.T) {
	svc := &fakeService{err: &quizgen.GenerationError{Err: errors.New("boom")}}
	s := newScreen(svc)

	typeText(s, "Math")
	s.Update(key(tea.KeyTab))
	typeText(s, "Arithmetic")
	s.Update(key(tea.KeyTab))
	s.Update(key(tea.KeyTab))
	_, cmd := s.Update(key(tea.KeyEnter))

	_, cmd = s.Update(generatedFrom(t, cmd))
	if cmd != nil {
		t.Error("expected no navigation after a failure")
	}
	if !strings.Contains(s.errMsg, "Error generating questions: boom") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	// The form keeps its values for another attempt.
	if s.Request().Topic != "Arithmetic" {
		t.Errorf("topic = %q", s.Request().Topic)
	}
}

func TestSetupScreen_DifficultyDigits(t *testing.T) {
	s := newScreen(&fakeService{})
	s.Update(key(tea.KeyTab))
	s.Update(key(tea.KeyTab))
	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if s.Request().Difficulty != quizgen.Medium {
		t.Errorf("difficulty = %s, want Medium", s.Request().Difficulty)
	}
	s.Update(key(tea.KeyLeft))
	s.Update(key(tea.KeyLeft))
	if s.Request().Difficulty != quizgen.Easy {
		t.Errorf("difficulty = %s, want Easy", s.Request().Difficulty)
	}
}
