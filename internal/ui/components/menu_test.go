package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type pickedMsg string

func testMenu() Menu {
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd { return func() tea.Msg { return pickedMsg(s) } }
	}
	return NewMenu([]MenuItem{
		{Label: "Restart Quiz", Action: pick("restart")},
		{Label: "Quit", Action: pick("quit")},
	})
}

func TestMenuWraps(t *testing.T) {
	m := testMenu()

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up from first = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("down from last = %d, want 0", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should run the selected action")
	}
	if got := cmd(); got != pickedMsg("quit") {
		t.Errorf("action = %v, want quit", got)
	}
}

func TestMenuViewMarksSelection(t *testing.T) {
	view := testMenu().View()
	if !strings.Contains(view, "Restart Quiz") || !strings.Contains(view, "Quit") {
		t.Errorf("view missing labels: %q", view)
	}
	if !strings.Contains(view, "▸") {
		t.Error("view should mark the selected item")
	}
}

func TestEmptyMenuIgnoresKeys(t *testing.T) {
	m := NewMenu(nil)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("empty menu should not produce a command")
	}
}
