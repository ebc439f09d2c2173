package breakout

import "math"

// Snapshot contains the complete game state for replay and determinism
// checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	State     int
	Score     int
	HighScore int

	PaddleX float64
	BallX   float64
	BallY   float64
	BallDX  float64
	BallDY  float64

	// Brick activity, column-major: column*rows + row
	Bricks []bool

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	bricks := make([]bool, len(w.Bricks.bricks))
	for i, b := range w.Bricks.bricks {
		bricks[i] = b.Active
	}

	return Snapshot{
		Tick:      uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		State:     int(w.State),
		Score:     w.Score.Current,
		HighScore: w.Score.High,
		PaddleX:   w.Paddle.X,
		BallX:     w.Ball.X,
		BallY:     w.Ball.Y,
		BallDX:    w.Ball.DX,
		BallDY:    w.Ball.DY,
		Bricks:    bricks,
		RNGState:  g.rng.state,
	}
}

// ApplySnapshot restores game state from a snapshot. A brick list that does
// not match the configured grid is ignored and the grid is left full.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = int(snap.Tick) //#nosec G115 -- tick count fits in int

	w := NewWorld(g.layout, snap.HighScore)
	w.State = State(snap.State)
	w.Score.Current = snap.Score
	w.Paddle.X = snap.PaddleX
	w.Ball = Ball{X: snap.BallX, Y: snap.BallY, DX: snap.BallDX, DY: snap.BallDY}

	if len(snap.Bricks) == len(w.Bricks.bricks) {
		for i, active := range snap.Bricks {
			w.Bricks.bricks[i].Active = active
		}
	}

	g.world = w
	g.rng.state = snap.RNGState
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.State)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore) //#nosec G115 -- hash computation

	for _, f := range []float64{snap.PaddleX, snap.BallX, snap.BallY, snap.BallDX, snap.BallDY} {
		h = h*31 + math.Float64bits(f)
	}

	for _, active := range snap.Bricks {
		h *= 31
		if active {
			h++
		}
	}

	h = h*31 + snap.RNGState

	return h
}
