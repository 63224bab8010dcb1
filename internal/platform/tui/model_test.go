package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/games"
	"github.com/vovakirdan/keinplan-arcade/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	m := NewModel(Options{
		Config:   cfg,
		Registry: games.NewRegistry(config.DefaultGames()),
	})
	t.Cleanup(m.Close)
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelStartsInMenu(t *testing.T) {
	m := newTestModel(t)
	if got := m.Session().State(); got != session.StateMenu {
		t.Fatalf("state = %v, want menu", got)
	}
	if len(m.menu.items) != 4 {
		t.Errorf("menu lists %d games, want 4", len(m.menu.items))
	}
}

func TestModelMenuStartsGameOnNextFrame(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session().State() != session.StateMenu {
		t.Fatal("start should wait for the frame")
	}

	m = send(t, m, FrameMsg(time.Now()))
	if got := m.Session().State(); got != session.StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	if got := m.Session().Kind(); got != "cube-racer" {
		t.Errorf("kind = %q, want cube-racer", got)
	}
}

func TestModelPauseAndBackToMenu(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	now := time.Now()
	m = send(t, m, FrameMsg(now))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	m = send(t, m, FrameMsg(now.Add(16*time.Millisecond)))
	if got := m.Session().State(); got != session.StatePaused {
		t.Fatalf("state = %v, want paused", got)
	}

	m = send(t, m, runeKey('b'))
	m = send(t, m, FrameMsg(now.Add(32*time.Millisecond)))
	if got := m.Session().State(); got != session.StateMenu {
		t.Fatalf("state = %v, want menu", got)
	}
	if n := m.graph.Len(); n != 0 {
		t.Errorf("scene holds %d entities after leaving the game", n)
	}
}

func TestModelBlurPauses(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	now := time.Now()
	m = send(t, m, FrameMsg(now))

	m = send(t, m, tea.BlurMsg{})
	m = send(t, m, FrameMsg(now.Add(16*time.Millisecond)))
	if got := m.Session().State(); got != session.StatePaused {
		t.Fatalf("state = %v, want paused", got)
	}

	m = send(t, m, tea.FocusMsg{})
	m = send(t, m, FrameMsg(now.Add(32*time.Millisecond)))
	if got := m.Session().State(); got != session.StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
}

func TestModelResizeKeepsHUDRows(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	s := m.renderer.Screen
	if s.Width() != 100 || s.Height() != 30-hudRows-footerRows {
		t.Errorf("screen = %dx%d, want 100x%d", s.Width(), s.Height(), 30-hudRows-footerRows)
	}
}

func TestModelScoreboardWithoutStore(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.board != nil {
		t.Fatal("scoreboard opened without a store")
	}
	if m.notice == "" {
		t.Error("expected a notice")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
