package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screen"
	"github.com/abhisek/quizcrafter/internal/screens/welcome"
)

type idleService struct{}

func (idleService) Generate(context.Context, string, quizgen.Request) (quiz.Session, error) {
	return quiz.Session{}, nil
}

func (idleService) Submit(context.Context, string, string, int, string) (quiz.Session, quiz.Outcome, error) {
	return quiz.Session{}, quiz.Outcome{}, nil
}

func (idleService) Reset(context.Context, string) (quiz.Session, error) { return quiz.Reset(), nil }
func (idleService) FeedbackDelay() time.Duration                     { return 0 }

func sized(t *testing.T) AppModel {
	t.Helper()
	m := newAppModel(idleService{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel)
}

func TestAppWelcomeLeadsToSetup(t *testing.T) {
	m := sized(t)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("first screen = %T, want welcome", m.router.Active())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("keypress on welcome should transition")
	}
	updated, _ := m.Update(cmd())
	m = updated.(AppModel)

	if m.router.Active().Title() != "New Quiz" {
		t.Errorf("active screen = %q, want New Quiz", m.router.Active().Title())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppScoreInHeader(t *testing.T) {
	m := sized(t)

	updated, _ := m.Update(screen.ScoreMsg{Score: 3, Total: 20})
	m = updated.(AppModel)
	if m.score == nil || m.score.Score != 3 || m.score.Total != 20 {
		t.Errorf("score = %+v, want 3/20", m.score)
	}

	updated, _ = m.Update(screen.ScoreMsg{})
	m = updated.(AppModel)
	if m.score != nil {
		t.Error("score not cleared")
	}
}

func TestAppEscAtRootIsNoop(t *testing.T) {
	m := sized(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root screen should do nothing")
	}
}

func TestAppEscPopsPushedScreen(t *testing.T) {
	m := sized(t)
	m.router.Push(m.router.Active())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg")
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	m := sized(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
