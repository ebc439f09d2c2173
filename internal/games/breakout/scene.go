package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// SpriteKind identifies what a Sprite depicts.
type SpriteKind int

const (
	SpriteBrick SpriteKind = iota
	SpritePaddle
	SpriteBall
)

// Sprite is one filled rectangle of the scene in canvas units.
type Sprite struct {
	Kind  SpriteKind
	Box   core.Rect
	Color core.Color
}

// Sprites returns the scene in draw order: active bricks column-major, then
// the paddle, then the ball. Both the terminal and the window front end
// draw from it.
func (g *Game) Sprites() []Sprite {
	w := g.world
	l := g.layout
	sprites := make([]Sprite, 0, w.Bricks.ActiveCount()+2)

	for c := range w.Bricks.Columns() {
		for r := range w.Bricks.Rows() {
			brick := w.Bricks.At(c, r)
			if !brick.Active {
				continue
			}
			sprites = append(sprites, Sprite{
				Kind:  SpriteBrick,
				Box:   brick.Box(l),
				Color: g.cfg.Colors.RowColor(r),
			})
		}
	}

	sprites = append(sprites,
		Sprite{Kind: SpritePaddle, Box: w.Paddle.Box(l), Color: g.cfg.Colors.Paddle},
		Sprite{Kind: SpriteBall, Box: w.Ball.Box(l.BallSize), Color: g.cfg.Colors.Ball},
	)
	return sprites
}

// HUDText returns the score and high score labels.
func (g *Game) HUDText() (score, high string) {
	return fmt.Sprintf("SCORE: %d", g.world.Score.Current), fmt.Sprintf("HIGH: %d", g.world.Score.High)
}
