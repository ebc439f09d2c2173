package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Load loads the breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml ->
// ./configs/breakout.yaml -> embedded default. Files are layered over the
// embedded default, so a file only needs the fields it changes.
func Load(customPath string) (BreakoutConfig, error) {
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath("breakout.yaml"), filepath.Join("configs", "breakout.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err != nil {
			continue
		}
		if err := layered.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", path, err)
		}
		return layered, nil
	}

	return cfg, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded
// defaults if the embed is unusable.
func embeddedDefault() BreakoutConfig {
	var cfg BreakoutConfig
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig()
	}
	if err := cfg.Validate(); err != nil {
		return DefaultBreakoutConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports every field that would make the playfield nonsensical.
func (c BreakoutConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("canvas.width", c.Canvas.Width)
	positive("canvas.height", c.Canvas.Height)
	positive("ball.size", c.Ball.Size)
	positive("ball.initial_speed", c.Ball.InitialSpeed)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("paddle.step", c.Paddle.Step)
	positive("bricks.width", c.Bricks.Width)
	positive("bricks.height", c.Bricks.Height)

	if c.Ball.MaxBounceAngle <= 0 || c.Ball.MaxBounceAngle >= 180 {
		errs = append(errs, fmt.Errorf("ball.max_bounce_angle must be in (0, 180), got %v", c.Ball.MaxBounceAngle))
	}
	if c.Paddle.BottomOffset < 0 {
		errs = append(errs, fmt.Errorf("paddle.bottom_offset must not be negative, got %v", c.Paddle.BottomOffset))
	}
	if c.Paddle.Width > c.Canvas.Width {
		errs = append(errs, fmt.Errorf("paddle.width %v exceeds canvas.width %v", c.Paddle.Width, c.Canvas.Width))
	}
	if c.Bricks.Rows <= 0 || c.Bricks.Columns <= 0 {
		errs = append(errs, fmt.Errorf("bricks grid must be at least 1x1, got %dx%d", c.Bricks.Columns, c.Bricks.Rows))
	} else {
		right := c.Bricks.OffsetLeft + float64(c.Bricks.Columns)*(c.Bricks.Width+c.Bricks.Padding) - c.Bricks.Padding
		bottom := c.Bricks.OffsetTop + float64(c.Bricks.Rows)*(c.Bricks.Height+c.Bricks.Padding) - c.Bricks.Padding
		paddleTop := c.Canvas.Height - c.Paddle.Height - c.Paddle.BottomOffset
		if right > c.Canvas.Width {
			errs = append(errs, fmt.Errorf("bricks extend to x=%v past canvas.width %v", right, c.Canvas.Width))
		}
		if bottom >= paddleTop {
			errs = append(errs, fmt.Errorf("bricks extend to y=%v, reaching the paddle at y=%v", bottom, paddleTop))
		}
	}
	if len(c.Colors.RowColors) == 0 {
		errs = append(errs, errors.New("colors.rows must list at least one color"))
	}
	for i, col := range c.Colors.RowColors {
		if _, err := core.ParseHex(col); err != nil {
			errs = append(errs, fmt.Errorf("colors.rows[%d]: %w", i, err))
		}
	}
	for name, col := range map[string]core.Color{"paddle": c.Colors.Paddle, "ball": c.Colors.Ball} {
		if _, err := core.ParseHex(col); err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", name, err))
		}
	}
	if len(c.Input.Left) == 0 || len(c.Input.Right) == 0 || len(c.Input.Restart) == 0 {
		errs = append(errs, errors.New("input.left, input.right and input.restart need at least one key each"))
	}
	if c.Input.HoldTicks <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_ticks must be positive, got %d", c.Input.HoldTicks))
	}

	return errors.Join(errs...)
}
