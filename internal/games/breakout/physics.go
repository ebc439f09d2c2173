package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Events reports what happened during one Tick so the owner can persist and
// log within the same tick.
type Events struct {
	BrickHit         bool
	HitColumn        int
	HitRow           int
	HighScoreChanged bool
	Trigger          Trigger // TriggerNone unless the tick ended the run
}

// Tick advances w by one fixed step using the intent sampled for this tick
// and returns the next world. The input world is not modified. Nothing
// happens unless w is playing.
//
// Order: paddle move, wall and paddle collision, brick collision, then the
// ball position is committed with whatever velocity the collisions left.
func Tick(w World, in core.Intent) (World, Events) {
	var ev Events
	if !w.State.Active() {
		return w, ev
	}

	w.Paddle = movePaddle(w.Paddle, w.Layout, in)

	var lost bool
	w.Ball, lost = wallAndPaddleCollision(w.Ball, w.Paddle, w.Layout)
	if lost {
		w.fire(TriggerBallLost, &ev)
	} else {
		brickCollision(&w, &ev)
	}

	w.Ball.X += w.Ball.DX
	w.Ball.Y += w.Ball.DY
	return w, ev
}

// fire applies a state machine trigger and records it.
func (w *World) fire(t Trigger, ev *Events) {
	if next, ok := Next(w.State, t); ok {
		w.State = next
		ev.Trigger = t
	}
}

// movePaddle shifts the paddle by one step. Right is checked first, so it
// wins when both directions are held. The result is clamped to the canvas.
func movePaddle(p Paddle, l Layout, in core.Intent) Paddle {
	maxX := l.PaddleMaxX()
	switch {
	case in.MoveRight && p.X < maxX:
		p.X += l.PaddleStep
	case in.MoveLeft && p.X > 0:
		p.X -= l.PaddleStep
	}
	p.X = core.ClampF(p.X, 0, maxX)
	return p
}

// wallAndPaddleCollision resolves walls and the paddle against the predicted
// position. It reports lost when the ball would pass the bottom edge, in
// which case the paddle is not checked.
func wallAndPaddleCollision(b Ball, p Paddle, l Layout) (Ball, bool) {
	next := b.Predicted(l.BallSize)
	v := b.Velocity()

	if next.X < 0 || next.Right() > l.CanvasW {
		v = core.Reflect(v, core.AxisX)
	}
	if next.Y < 0 {
		v = core.Reflect(v, core.AxisY)
	}
	if next.Bottom() > l.CanvasH {
		b.SetVelocity(v)
		return b, true
	}

	// Only a descending ball bounces, so a ball already leaving upward
	// through the paddle band is not caught twice.
	if v.Y > 0 && core.RectsOverlap(next, p.Box(l)) {
		v = paddleBounce(next, p, l, v.Len())
	}

	b.SetVelocity(v)
	return b, false
}

// paddleBounce redirects the ball upward at an angle proportional to how far
// from the paddle center it hit, keeping the given speed. A corner contact
// can push the offset slightly past +-1.
func paddleBounce(ball core.Rect, p Paddle, l Layout, speed float64) core.Vec {
	half := l.PaddleW / 2
	offset := (ball.CenterX() - p.Box(l).CenterX()) / half
	angle := offset * (l.MaxBounceAngle / 2)
	return core.Vec{
		X: speed * math.Sin(angle),
		Y: -speed * math.Cos(angle),
	}
}

// brickCollision resolves at most one brick hit. Bricks are scanned
// column-major; the first active brick overlapping the predicted ball box
// is destroyed and the ball reflects on the axis along which its current box
// was outside the brick. When no brick is hit and none remain, the run is won.
func brickCollision(w *World, ev *Events) {
	l := w.Layout
	current := w.Ball.Box(l.BallSize)
	next := w.Ball.Predicted(l.BallSize)

	for c := range w.Bricks.Columns() {
		for r := range w.Bricks.Rows() {
			brick := w.Bricks.At(c, r)
			if !brick.Active {
				continue
			}
			box := brick.Box(l)
			if !core.RectsOverlap(next, box) {
				continue
			}

			v := w.Ball.Velocity()
			switch {
			case current.AboveOrBelow(box):
				v = core.Reflect(v, core.AxisY)
			case current.LeftOrRight(box):
				v = core.Reflect(v, core.AxisX)
			default:
				// Already overlapping on both axes (corner or containment).
				v = core.Reflect(v, core.AxisY)
			}
			w.Ball.SetVelocity(v)

			w.Bricks = w.Bricks.destroy(c, r)
			ev.BrickHit = true
			ev.HitColumn, ev.HitRow = c, r
			ev.HighScoreChanged = w.Score.add()
			return
		}
	}

	if w.Bricks.ActiveCount() == 0 && w.State == StatePlaying {
		w.fire(TriggerBricksCleared, ev)
	}
}
