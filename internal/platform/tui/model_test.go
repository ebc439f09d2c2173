package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

type run struct {
	score   int
	outcome string
}

type fakeRecorder struct {
	runs []run
}

func (f *fakeRecorder) RecordRun(score int, outcome string) error {
	f.runs = append(f.runs, run{score, outcome})
	return nil
}

func newTestModel(t *testing.T, rec RunRecorder) Model {
	t.Helper()
	game := breakout.New(config.DefaultBreakoutConfig())
	m := NewModel(game, rec, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}, nil)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelStartAndMove(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = update(t, m, TickMsg{})
	if m.game.State() != breakout.StatePlaying {
		t.Fatalf("State = %v, want PLAYING", m.game.State())
	}

	x := m.game.World().Paddle.X
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{})
	if got := m.game.World().Paddle.X; got <= x {
		t.Errorf("Paddle.X = %v, want > %v", got, x)
	}
}

func TestModelRecordsFinishedRunOnce(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)
	m.game.ApplySnapshot(breakout.Snapshot{
		State:   int(breakout.StatePlaying),
		Score:   3,
		PaddleX: 340,
		BallX:   100,
		BallY:   590,
		BallDY:  5,
	})

	for range 3 {
		m = update(t, m, TickMsg{})
	}

	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(rec.runs))
	}
	if rec.runs[0] != (run{3, storage.OutcomeGameOver}) {
		t.Errorf("recorded %+v", rec.runs[0])
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)
	m.game.ApplySnapshot(breakout.Snapshot{
		State:   int(breakout.StatePlaying),
		PaddleX: 340,
		BallX:   100,
		BallY:   590,
		BallDY:  5,
	})

	update(t, m, TickMsg{})
	if len(rec.runs) != 0 {
		t.Errorf("recorded %+v, want nothing for a zero score", rec.runs)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if next.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelViewAndResize(t *testing.T) {
	m := newTestModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "BREAKOUT") || !strings.Contains(view, "quit") {
		t.Errorf("view missing title or help bar:\n%s", view)
	}
	if m.screen.Height() != 24 {
		t.Errorf("playfield height = %d, want 24 (one row for help)", m.screen.Height())
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d after resize, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestScoreboardView(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	empty := NewScoreboardModel(store, breakout.GameID, "Breakout", 100, 30)
	if !strings.Contains(empty.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}

	store.SaveScore(breakout.GameID, 12, storage.OutcomeGameOver)
	store.SaveScore(breakout.GameID, 50, storage.OutcomeWin)

	m := NewScoreboardModel(store, breakout.GameID, "Breakout", 100, 30)
	view := m.View()
	for _, want := range []string{"HIGH SCORES - Breakout", "Best", "cleared", "lost ball"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}
	if len(m.table.Rows()) != 2 || m.table.Rows()[0][1] != "50" {
		t.Errorf("rows = %v", m.table.Rows())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if next.View() != "" {
		t.Error("scoreboard should clear its view on quit")
	}
}

func TestScreenRendererKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawColorText(0, 0, "SCORE: 7", "#FFFFFF")
	s.DrawColorText(0, 1, "HIGH", "#FF0000")

	out := RenderScreen(s)
	if !strings.Contains(out, "SCORE: 7") || !strings.Contains(out, "HIGH") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("want 2 rendered lines, got %q", out)
	}
}
