package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

const eps = 1e-9

func defaultLayout() Layout {
	return NewLayout(config.DefaultBreakoutConfig())
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewLayout(t *testing.T) {
	l := defaultLayout()

	if l.PaddleY != 565 {
		t.Errorf("PaddleY = %v, want 565", l.PaddleY)
	}
	if l.PaddleMaxX() != 680 {
		t.Errorf("PaddleMaxX() = %v, want 680", l.PaddleMaxX())
	}
	if !approx(l.MaxBounceAngle, 3*math.Pi/4) {
		t.Errorf("MaxBounceAngle = %v, want 3π/4", l.MaxBounceAngle)
	}
	if l.Columns != 10 || l.Rows != 5 {
		t.Errorf("grid = %dx%d, want 10x5", l.Columns, l.Rows)
	}
}

func TestNewWorld(t *testing.T) {
	w := NewWorld(defaultLayout(), 42)

	if w.State != StateStart {
		t.Errorf("State = %v, want START", w.State)
	}
	if w.Bricks.ActiveCount() != 50 {
		t.Errorf("ActiveCount() = %d, want 50", w.Bricks.ActiveCount())
	}
	if w.Paddle.X != 340 {
		t.Errorf("Paddle.X = %v, want 340", w.Paddle.X)
	}
	if w.Ball.X != 396 || w.Ball.Y != 557 {
		t.Errorf("Ball at (%v, %v), want (396, 557)", w.Ball.X, w.Ball.Y)
	}
	if w.Ball.DX != 0 || w.Ball.DY != 0 {
		t.Errorf("Ball velocity = (%v, %v), want zero", w.Ball.DX, w.Ball.DY)
	}
	if w.Score.Current != 0 || w.Score.High != 42 {
		t.Errorf("Score = %+v, want {0 42}", w.Score)
	}
}

func TestBrickGridPositions(t *testing.T) {
	g := NewBrickGrid(defaultLayout())

	tests := []struct {
		c, r int
		x, y float64
	}{
		{0, 0, 30, 40},
		{2, 1, 178, 64},
		{9, 4, 696, 136},
	}

	for _, tt := range tests {
		b := g.At(tt.c, tt.r)
		if b.X != tt.x || b.Y != tt.y {
			t.Errorf("At(%d, %d) = (%v, %v), want (%v, %v)", tt.c, tt.r, b.X, b.Y, tt.x, tt.y)
		}
		if !b.Active {
			t.Errorf("At(%d, %d) should start active", tt.c, tt.r)
		}
	}
}

func TestBrickGridDestroyCopies(t *testing.T) {
	g := NewBrickGrid(defaultLayout())
	next := g.destroy(3, 2)

	if g.ActiveCount() != 50 {
		t.Errorf("original grid changed: ActiveCount() = %d", g.ActiveCount())
	}
	if next.ActiveCount() != 49 {
		t.Errorf("ActiveCount() after destroy = %d, want 49", next.ActiveCount())
	}
	if next.At(3, 2).Active {
		t.Error("destroyed brick is still active")
	}
	if !g.At(3, 2).Active {
		t.Error("destroy leaked into the original grid")
	}
}

func TestRelaunch(t *testing.T) {
	l := defaultLayout()
	played := NewWorld(l, 9)
	played.Score.Current = 7
	played.Bricks = played.Bricks.destroy(0, 0)
	played.Paddle.X = 0

	for _, dir := range []float64{-1, 1} {
		w := played.relaunch(dir)

		if w.Score.Current != 0 || w.Score.High != 9 {
			t.Errorf("dir %v: Score = %+v, want {0 9}", dir, w.Score)
		}
		if w.Bricks.ActiveCount() != 50 {
			t.Errorf("dir %v: ActiveCount() = %d, want 50", dir, w.Bricks.ActiveCount())
		}
		if w.Paddle.X != 340 {
			t.Errorf("dir %v: Paddle.X = %v, want 340", dir, w.Paddle.X)
		}
		if !approx(w.Ball.Speed(), l.InitialSpeed) {
			t.Errorf("dir %v: speed = %v, want %v", dir, w.Ball.Speed(), l.InitialSpeed)
		}
		if !approx(w.Ball.DX, dir*5*math.Sqrt2/2) || !approx(w.Ball.DY, -5*math.Sqrt2/2) {
			t.Errorf("dir %v: velocity = (%v, %v)", dir, w.Ball.DX, w.Ball.DY)
		}
	}
}

func TestScoreAdd(t *testing.T) {
	s := Score{Current: 2, High: 3}

	if s.add() {
		t.Error("reaching the high score should not raise it")
	}
	if !s.add() {
		t.Error("exceeding the high score should raise it")
	}
	if s.Current != 4 || s.High != 4 {
		t.Errorf("Score = %+v, want {4 4}", s)
	}
}
