package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default configuration. It mirrors
// defaults/breakout.yaml and is used when the embedded file cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Ball: BallConfig{
			Size:           8,
			InitialSpeed:   5,
			MaxBounceAngle: 135,
		},
		Paddle: PaddleConfig{
			Width:        120,
			Height:       15,
			BottomOffset: 20,
			Step:         7,
		},
		Bricks: BricksConfig{
			Rows:       5,
			Columns:    10,
			Width:      70,
			Height:     20,
			Padding:    4,
			OffsetTop:  40,
			OffsetLeft: 30,
		},
		Colors: ColorsConfig{
			RowColors: []core.Color{"#993300", "#FF0000", "#FF99CC", "#00FF00", "#FFFF99"},
			Paddle:    "#CCCCCC",
			Ball:      "#F0F0F0",
			Text:      "#FFFFFF",
			Status:    "#FFFF00",
		},
		Input: InputConfig{
			Left:      []string{"left", "a", "A"},
			Right:     []string{"right", "d", "D"},
			Restart:   []string{" "},
			Quit:      []string{"q", "ctrl+c", "esc"},
			HoldTicks: 12,
		},
	}
}
