package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcrafter/internal/router"
	"github.com/abhisek/quizcrafter/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "setup" }
func (s *stubScreen) Title() string                          { return "New Quiz" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(80, 24), tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 4)
	view := w.View(80, 24)
	if !strings.Contains(view, tagline) {
		t.Error("tagline should be visible after the banner phase")
	}
	if strings.Contains(view, "press any key") {
		t.Error("hint should not be visible yet")
	}

	sendTicks(w, 8)
	if !strings.Contains(w.View(80, 24), "press any key to start") {
		t.Error("hint should be visible")
	}

	sendTicks(w, 20)
	if w.elapsed != hintAt {
		t.Errorf("elapsed = %v, want capped at %v", w.elapsed, hintAt)
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q", got)
	}
	if got := RenderBanner(80); !strings.Contains(got, bannerWide) {
		t.Errorf("wide banner = %q", got)
	}
}

func TestKeypressReplacesScreen(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger the transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected router.ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "New Quiz" {
		t.Errorf("replacement title = %q", msg.Screen.Title())
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestTransitionOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}

	// Ticks stop after the transition.
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("tick after transition should not reschedule")
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 50)
	if *calls != 0 {
		t.Errorf("factory called without a keypress: %d", *calls)
	}
}
