// Package breakout implements a single-screen brick breaker: one ball, one
// paddle, a fixed brick grid, score and high score.
//
// The simulation works in logical canvas units and knows nothing about
// terminals or windows. World is the whole game state; Tick advances it by
// one fixed step and the state machine in state.go decides when Tick runs.
package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Layout is the static geometry of a session, derived from configuration.
type Layout struct {
	CanvasW, CanvasH float64

	BallSize       float64
	InitialSpeed   float64
	MaxBounceAngle float64 // Full bounce fan in radians

	PaddleW, PaddleH float64
	PaddleY          float64 // Fixed top edge of the paddle
	PaddleStep       float64

	Columns, Rows   int
	BrickW, BrickH  float64
	BrickPadding    float64
	BrickOffsetTop  float64
	BrickOffsetLeft float64
}

// NewLayout computes the layout from a validated configuration.
func NewLayout(cfg config.BreakoutConfig) Layout {
	return Layout{
		CanvasW:         cfg.Canvas.Width,
		CanvasH:         cfg.Canvas.Height,
		BallSize:        cfg.Ball.Size,
		InitialSpeed:    cfg.Ball.InitialSpeed,
		MaxBounceAngle:  cfg.Ball.MaxBounceAngle * math.Pi / 180,
		PaddleW:         cfg.Paddle.Width,
		PaddleH:         cfg.Paddle.Height,
		PaddleY:         cfg.Canvas.Height - cfg.Paddle.Height - cfg.Paddle.BottomOffset,
		PaddleStep:      cfg.Paddle.Step,
		Columns:         cfg.Bricks.Columns,
		Rows:            cfg.Bricks.Rows,
		BrickW:          cfg.Bricks.Width,
		BrickH:          cfg.Bricks.Height,
		BrickPadding:    cfg.Bricks.Padding,
		BrickOffsetTop:  cfg.Bricks.OffsetTop,
		BrickOffsetLeft: cfg.Bricks.OffsetLeft,
	}
}

// PaddleMaxX is the right clamp bound for the paddle's left edge.
func (l Layout) PaddleMaxX() float64 {
	return l.CanvasW - l.PaddleW
}

// Ball is the ball state. X, Y is the top-left corner of its bounding square.
type Ball struct {
	X, Y   float64
	DX, DY float64 // Displacement per tick
}

// Velocity returns the ball's velocity vector.
func (b Ball) Velocity() core.Vec {
	return core.Vec{X: b.DX, Y: b.DY}
}

// SetVelocity replaces the ball's velocity.
func (b *Ball) SetVelocity(v core.Vec) {
	b.DX, b.DY = v.X, v.Y
}

// Speed returns the velocity magnitude.
func (b Ball) Speed() float64 {
	return b.Velocity().Len()
}

// Box returns the ball's current bounding box.
func (b Ball) Box(size float64) core.Rect {
	return core.NewRect(b.X, b.Y, size, size)
}

// Predicted returns the bounding box after applying the current velocity.
func (b Ball) Predicted(size float64) core.Rect {
	return b.Box(size).Translate(b.Velocity())
}

// Paddle is the player's paddle. Only X changes; Y comes from the layout.
type Paddle struct {
	X float64 // Left edge
}

// Box returns the paddle's bounding box.
func (p Paddle) Box(l Layout) core.Rect {
	return core.NewRect(p.X, l.PaddleY, l.PaddleW, l.PaddleH)
}

// Brick is a single brick. Position is fixed at layout time.
type Brick struct {
	X, Y   float64
	Active bool
}

// Box returns the brick's bounding box.
func (b Brick) Box(l Layout) core.Rect {
	return core.NewRect(b.X, b.Y, l.BrickW, l.BrickH)
}

// BrickGrid is a columns x rows grid of bricks stored column-major.
// The grid is treated as immutable once shared: destroy copies it first, so
// two Worlds never see each other's brick changes.
type BrickGrid struct {
	columns, rows int
	bricks        []Brick
}

// NewBrickGrid allocates a fully active grid.
func NewBrickGrid(l Layout) BrickGrid {
	g := BrickGrid{
		columns: l.Columns,
		rows:    l.Rows,
		bricks:  make([]Brick, l.Columns*l.Rows),
	}
	for c := range l.Columns {
		for r := range l.Rows {
			g.bricks[g.index(c, r)] = Brick{
				X:      float64(c)*(l.BrickW+l.BrickPadding) + l.BrickOffsetLeft,
				Y:      float64(r)*(l.BrickH+l.BrickPadding) + l.BrickOffsetTop,
				Active: true,
			}
		}
	}
	return g
}

func (g BrickGrid) index(c, r int) int {
	return c*g.rows + r
}

// Columns returns the number of brick columns.
func (g BrickGrid) Columns() int {
	return g.columns
}

// Rows returns the number of brick rows.
func (g BrickGrid) Rows() int {
	return g.rows
}

// At returns the brick at column c, row r.
func (g BrickGrid) At(c, r int) Brick {
	return g.bricks[g.index(c, r)]
}

// ActiveCount returns the number of bricks still in play.
func (g BrickGrid) ActiveCount() int {
	n := 0
	for _, b := range g.bricks {
		if b.Active {
			n++
		}
	}
	return n
}

// destroy returns a copy of the grid with brick (c, r) destroyed.
func (g BrickGrid) destroy(c, r int) BrickGrid {
	next := BrickGrid{
		columns: g.columns,
		rows:    g.rows,
		bricks:  make([]Brick, len(g.bricks)),
	}
	copy(next.bricks, g.bricks)
	next.bricks[next.index(c, r)].Active = false
	return next
}

// Score tracks the current run and the best run seen.
type Score struct {
	Current int
	High    int
}

// add awards one point and reports whether the high score was raised.
func (s *Score) add() bool {
	s.Current++
	if s.Current > s.High {
		s.High = s.Current
		return true
	}
	return false
}

// World is the complete simulation state. It is a value: Tick takes one and
// returns the next.
type World struct {
	Layout Layout
	State  State
	Ball   Ball
	Paddle Paddle
	Bricks BrickGrid
	Score  Score
}

// NewWorld builds the START world: full grid, centered paddle and the ball
// resting on the paddle's center with no velocity.
func NewWorld(l Layout, highScore int) World {
	w := World{
		Layout: l,
		State:  StateStart,
		Bricks: NewBrickGrid(l),
		Score:  Score{High: highScore},
	}
	w.centerEntities()
	return w
}

// centerEntities recenters the paddle and rests the ball on it.
func (w *World) centerEntities() {
	l := w.Layout
	w.Paddle = Paddle{X: (l.CanvasW - l.PaddleW) / 2}
	w.Ball = Ball{
		X: w.Paddle.X + l.PaddleW/2 - l.BallSize/2,
		Y: l.PaddleY - l.BallSize,
	}
}

// relaunch resets the world for a new run. dirX picks the diagonal: -1 for
// up-left, +1 for up-right. The ball leaves at 45 degrees at the initial
// speed. The high score and state are left to the caller.
func (w World) relaunch(dirX float64) World {
	next := NewWorld(w.Layout, w.Score.High)
	component := w.Layout.InitialSpeed * math.Cos(math.Pi/4)
	next.Ball.DX = dirX * component
	next.Ball.DY = -component
	return next
}
