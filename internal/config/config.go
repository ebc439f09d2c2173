// Package config provides YAML-based game configuration loading for the
// breakout game: canvas geometry, entity sizes, brick layout, colors and key
// bindings.
package config

import "github.com/vovakirdan/tui-breakout/internal/core"

// BreakoutConfig contains all configuration for the game.
type BreakoutConfig struct {
	Canvas CanvasConfig `yaml:"canvas"`
	Ball   BallConfig   `yaml:"ball"`
	Paddle PaddleConfig `yaml:"paddle"`
	Bricks BricksConfig `yaml:"bricks"`
	Colors ColorsConfig `yaml:"colors"`
	Input  InputConfig  `yaml:"input"`
}

// CanvasConfig defines the logical playfield in canvas units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines the ball.
type BallConfig struct {
	Size         float64 `yaml:"size"`
	InitialSpeed float64 `yaml:"initial_speed"` // Units per tick
	// MaxBounceAngle is the full bounce fan in degrees; an edge hit leaves
	// the paddle at half of it from vertical.
	MaxBounceAngle float64 `yaml:"max_bounce_angle"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"`
	Step         float64 `yaml:"step"` // Units moved per tick while a direction is held
}

// BricksConfig defines the brick grid layout.
type BricksConfig struct {
	Rows       int     `yaml:"rows"`
	Columns    int     `yaml:"columns"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`
	OffsetTop  float64 `yaml:"offset_top"`
	OffsetLeft float64 `yaml:"offset_left"`
}

// ColorsConfig defines render colors. Rows cycle through RowColors.
type ColorsConfig struct {
	RowColors []core.Color `yaml:"rows"`
	Paddle    core.Color   `yaml:"paddle"`
	Ball      core.Color   `yaml:"ball"`
	Text      core.Color   `yaml:"text"`
	Status    core.Color   `yaml:"status"`
}

// InputConfig defines key bindings. Key names follow Bubble Tea's
// KeyMsg.String() form ("left", "a", " ", "ctrl+c").
type InputConfig struct {
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Restart []string `yaml:"restart"`
	Quit    []string `yaml:"quit"`
	// HoldTicks is how long the terminal front end keeps a direction held
	// after the last key press or auto-repeat, since terminals report no
	// key release.
	HoldTicks int `yaml:"hold_ticks"`
}

// RowColor returns the color for a brick row, cycling through RowColors.
func (c ColorsConfig) RowColor(row int) core.Color {
	if len(c.RowColors) == 0 {
		return core.ColorDefault
	}
	return c.RowColors[row%len(c.RowColors)]
}
