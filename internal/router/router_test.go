package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcrafter/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "setup"}
	r := New(s1)

	s2 := &stubScreen{title: "question"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "question" {
		t.Errorf("expected active 'question', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "setup"}
	r := New(s1)

	s2 := &stubScreen{title: "question"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "setup" {
		t.Errorf("expected active 'setup', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "setup"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "setup"}
	r := New(s1)

	s2 := &stubScreen{title: "question"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "question" {
		t.Errorf("expected active 'question', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "setup"}
	r := New(s1)

	s2 := &stubScreen{title: "question"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "question" {
		t.Errorf("expected active 'question', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "setup"}
	r := New(s1)

	s2 := &stubScreen{title: "question"}
	r.Push(s2)

	s3 := &stubScreen{title: "summary"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("expected active 'summary', got %q", r.Active().Title())
	}
}

func TestPopToRoot(t *testing.T) {
	setup := &stubScreen{title: "setup"}
	r := New(setup)
	r.Push(&stubScreen{title: "question"})
	r.Replace(&stubScreen{title: "summary"})

	setup.initRan = false
	r.Update(PopToRootMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active() != setup {
		t.Errorf("expected setup screen on top, got %q", r.Active().Title())
	}
	if !setup.initRan {
		t.Error("expected Init() to re-run on the root screen")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r := New(&stubScreen{title: "setup"})
	counter := &countingScreen{}
	r.Push(counter)

	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	r.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})

	if counter.updates != 2 {
		t.Errorf("expected 2 updates, got %d", counter.updates)
	}
}

type countingScreen struct {
	stubScreen
	updates int
}

func (c *countingScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	c.updates++
	return c, nil
}
