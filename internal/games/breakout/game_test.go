package breakout

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// memStore is an in-memory HighScoreStore that records every save.
type memStore struct {
	high    int
	saves   []int
	loadErr error
	saveErr error
}

func (m *memStore) LoadHighScore() (int, error) {
	return m.high, m.loadErr
}

func (m *memStore) SaveHighScore(score int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves = append(m.saves, score)
	m.high = score
	return nil
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(seed int64, opts ...Option) *Game {
	g := New(config.DefaultBreakoutConfig(), opts...)
	g.Reset(testRuntime(seed))
	return g
}

// aboutToHit places a PLAYING ball just under brick (0, 4), moving up.
func aboutToHit(score, high int) Snapshot {
	return Snapshot{
		State:     int(StatePlaying),
		Score:     score,
		HighScore: high,
		PaddleX:   340,
		BallX:     60,
		BallY:     158,
		BallDY:    -5,
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.Intent, 400)
	for i := range inputs {
		switch {
		case i == 0:
			inputs[i].Restart = true
		case i%7 < 3:
			inputs[i].MoveRight = true
		default:
			inputs[i].MoveLeft = true
		}
	}

	run := func() Snapshot {
		g := newTestGame(12345)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.State != snap2.State {
		t.Errorf("runs diverged: %+v vs %+v", snap1, snap2)
	}
}

func TestGameStartsOnTitle(t *testing.T) {
	g := newTestGame(1)

	res := g.Step(core.Intent{MoveRight: true})
	if res.State != StateStart {
		t.Errorf("State = %v, want START", res.State)
	}
	if g.World().Paddle.X != 340 {
		t.Errorf("paddle moved before start: %v", g.World().Paddle.X)
	}
}

func TestGameRestartDiagonal(t *testing.T) {
	tests := []struct {
		seed    int64
		wantNeg bool
	}{
		{1, true},
		{2, false},
	}

	for _, tt := range tests {
		g := newTestGame(tt.seed)
		res := g.Step(core.Intent{Restart: true})

		if res.State != StatePlaying || res.Finished {
			t.Fatalf("seed %d: result = %+v, want PLAYING", tt.seed, res)
		}
		w := g.World()
		if (w.Ball.DX < 0) != tt.wantNeg {
			t.Errorf("seed %d: DX = %v, want negative = %v", tt.seed, w.Ball.DX, tt.wantNeg)
		}
		if !approx(w.Ball.DY, -5*math.Sqrt2/2) || !approx(w.Ball.Speed(), 5) {
			t.Errorf("seed %d: velocity = (%v, %v)", tt.seed, w.Ball.DX, w.Ball.DY)
		}
		// No physics on the restart tick.
		if w.Ball.X != 396 || w.Ball.Y != 557 {
			t.Errorf("seed %d: ball moved on restart tick: (%v, %v)", tt.seed, w.Ball.X, w.Ball.Y)
		}
	}
}

func TestGameRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(1)
	g.Step(core.Intent{Restart: true})
	dx := g.World().Ball.DX

	res := g.Step(core.Intent{Restart: true})
	w := g.World()
	if res.State != StatePlaying {
		t.Errorf("State = %v, want PLAYING", res.State)
	}
	if w.Ball.DX != dx || !approx(w.Ball.Y, 557-5*math.Sqrt2/2) {
		t.Errorf("restart while playing reset the run: ball = %+v", w.Ball)
	}
}

func TestGameRestartResetsRun(t *testing.T) {
	for _, s := range []State{StateGameOver, StateWin} {
		g := newTestGame(3)
		snap := aboutToHit(7, 9)
		snap.State = int(s)
		snap.Bricks = make([]bool, 50)
		g.ApplySnapshot(snap)

		res := g.Step(core.Intent{Restart: true})
		w := g.World()

		if res.State != StatePlaying {
			t.Errorf("%v: State = %v, want PLAYING", s, res.State)
		}
		if res.Score != 0 || res.HighScore != 9 {
			t.Errorf("%v: score = %d, high = %d, want 0 and 9", s, res.Score, res.HighScore)
		}
		if w.Bricks.ActiveCount() != 50 {
			t.Errorf("%v: ActiveCount() = %d, want 50", s, w.Bricks.ActiveCount())
		}
		if w.Paddle.X != 340 {
			t.Errorf("%v: Paddle.X = %v, want 340", s, w.Paddle.X)
		}
	}
}

func TestGameLoadsHighScore(t *testing.T) {
	store := &memStore{high: 17}
	g := newTestGame(1, WithStore(store))

	if g.World().Score.High != 17 {
		t.Errorf("High = %d, want 17", g.World().Score.High)
	}
}

func TestGameLoadFailureStartsAtZero(t *testing.T) {
	var buf bytes.Buffer
	store := &memStore{high: 17, loadErr: errors.New("disk gone")}
	g := newTestGame(1, WithStore(store), WithLogger(log.New(&buf)))

	if g.World().Score.High != 0 {
		t.Errorf("High = %d, want 0", g.World().Score.High)
	}
	if !strings.Contains(buf.String(), "could not load high score") {
		t.Errorf("load failure not logged: %q", buf.String())
	}
}

func TestGamePersistsHighScoreWhenExceeded(t *testing.T) {
	store := &memStore{high: 3}
	g := newTestGame(1, WithStore(store))
	g.ApplySnapshot(aboutToHit(3, 3))

	res := g.Step(core.Intent{})
	if res.Score != 4 || res.HighScore != 4 {
		t.Fatalf("result = %+v, want score and high 4", res)
	}
	if len(store.saves) != 1 || store.saves[0] != 4 {
		t.Errorf("saves = %v, want [4]", store.saves)
	}

	// Below the best: no save.
	g.ApplySnapshot(aboutToHit(0, 4))
	g.Step(core.Intent{})
	if len(store.saves) != 1 {
		t.Errorf("saves = %v, want no new save below the high score", store.saves)
	}
}

func TestGameSaveFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	store := &memStore{saveErr: errors.New("read-only")}
	g := newTestGame(1, WithStore(store), WithLogger(log.New(&buf)))
	g.ApplySnapshot(aboutToHit(0, 0))

	res := g.Step(core.Intent{})
	if res.Score != 1 || res.HighScore != 1 || res.State != StatePlaying {
		t.Errorf("result = %+v, want play to continue", res)
	}
	if !strings.Contains(buf.String(), "could not save high score") {
		t.Errorf("save failure not logged: %q", buf.String())
	}
}

func TestGameFinishedOnce(t *testing.T) {
	g := newTestGame(1)
	g.ApplySnapshot(Snapshot{
		State:   int(StatePlaying),
		PaddleX: 340,
		BallX:   100,
		BallY:   590,
		BallDY:  5,
	})

	res := g.Step(core.Intent{})
	if !res.Finished || res.State != StateGameOver {
		t.Fatalf("result = %+v, want finished GAME_OVER", res)
	}
	if res.State.Outcome() != "game_over" {
		t.Errorf("Outcome() = %q", res.State.Outcome())
	}

	res = g.Step(core.Intent{})
	if res.Finished {
		t.Error("Finished reported twice")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g1 := newTestGame(99)
	g1.Step(core.Intent{Restart: true})
	for range 40 {
		g1.Step(core.Intent{MoveLeft: true})
	}
	snap := g1.Snapshot()

	g2 := newTestGame(5)
	g2.ApplySnapshot(snap)
	restored := g2.Snapshot()
	if restored.Hash() != snap.Hash() {
		t.Fatalf("restored hash %d, want %d", restored.Hash(), snap.Hash())
	}

	for range 100 {
		g1.Step(core.Intent{MoveRight: true})
		g2.Step(core.Intent{MoveRight: true})
	}
	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Error("games diverged after restoring a snapshot")
	}
}

func TestGameRenderTitle(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"BREAKOUT", "Press SPACE to start", "SCORE: 0", "HIGH: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	cell := screen.GetCell(3, 1)
	if cell.Rune != BrickChar || cell.Color != "#993300" {
		t.Errorf("brick (0, 0) cell = %+v, want %q in row 0 color", cell, BrickChar)
	}
	if screen.GetCell(34, 22).Rune != PaddleChar {
		t.Errorf("paddle not drawn at (34, 22): %q", screen.GetCell(34, 22).Rune)
	}
}

func TestGameRenderStates(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		want   string
		absent string
	}{
		{"playing", StatePlaying, "SCORE: 5", "BREAKOUT"},
		{"game over", StateGameOver, "GAME OVER", "YOU WIN!"},
		{"win", StateWin, "YOU WIN!", "GAME OVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(1)
			snap := aboutToHit(5, 8)
			snap.State = int(tt.state)
			g.ApplySnapshot(snap)

			screen := core.NewScreen(80, 24)
			g.Render(screen)
			out := screen.String()

			if !strings.Contains(out, tt.want) {
				t.Errorf("render missing %q", tt.want)
			}
			if strings.Contains(out, tt.absent) {
				t.Errorf("render unexpectedly contains %q", tt.absent)
			}
		})
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(30, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small notice")
	}
}

func TestKeyLabel(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{[]string{" "}, "SPACE"},
		{[]string{"space", "enter"}, "SPACE"},
		{[]string{"enter"}, "ENTER"},
		{nil, "?"},
	}

	for _, tt := range tests {
		if got := KeyLabel(tt.keys); got != tt.want {
			t.Errorf("KeyLabel(%q) = %q, want %q", tt.keys, got, tt.want)
		}
	}
}

func TestSprites(t *testing.T) {
	g := newTestGame(1)
	sprites := g.Sprites()

	if len(sprites) != 52 {
		t.Fatalf("len(Sprites()) = %d, want 50 bricks + paddle + ball", len(sprites))
	}
	first := sprites[0]
	if first.Kind != SpriteBrick || first.Box != core.NewRect(30, 40, 70, 20) || first.Color != "#993300" {
		t.Errorf("first sprite = %+v", first)
	}
	if sprites[1].Color != "#FF0000" {
		t.Errorf("second brick color = %q, want row 1 color", sprites[1].Color)
	}
	paddle, ball := sprites[50], sprites[51]
	if paddle.Kind != SpritePaddle || paddle.Box != core.NewRect(340, 565, 120, 15) {
		t.Errorf("paddle sprite = %+v", paddle)
	}
	if ball.Kind != SpriteBall || ball.Box != core.NewRect(396, 557, 8, 8) {
		t.Errorf("ball sprite = %+v", ball)
	}

	snap := g.Snapshot()
	for i := range 10 {
		snap.Bricks[i] = false
	}
	g.ApplySnapshot(snap)
	if got := len(g.Sprites()); got != 42 {
		t.Errorf("len(Sprites()) after clearing 10 bricks = %d, want 42", got)
	}
}
