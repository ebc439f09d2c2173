package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start Breakout in the terminal. The 800x600 playfield is scaled to
the terminal size.

Controls:
  Left/A, Right/D  - Move paddle
  Space            - Start / restart
  Ctrl+S           - Save a text screenshot
  Q/Esc/Ctrl+C     - Quit

Terminals report key presses but not releases, so a direction keeps moving
for input.hold_ticks ticks after the last press or key repeat.

Examples:
  breakout play
  breakout play --fps 30 --seed 7
  breakout play --config ./my-breakout.yaml --log-file breakout.log --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// session bundles what every front end needs for one game.
type session struct {
	cfg     config.BreakoutConfig
	game    *breakout.Game
	board   *storage.Board // nil without storage
	backend storage.Backend
	logger  *log.Logger
}

// newSession loads config, opens storage and builds the game. Storage
// failures are reported and play continues without persistence.
func newSession(logger *log.Logger) (*session, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger}
	opts := []breakout.Option{breakout.WithLogger(logger)}

	backend, err := openBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores storage: %v\n", err)
		logger.Warn("playing without score storage", "error", err)
	} else {
		s.backend = backend
		s.board = storage.NewBoard(backend, breakout.GameID)
		opts = append(opts, breakout.WithStore(s.board))
	}

	s.game = breakout.New(cfg, opts...)
	return s, nil
}

// recorder returns the board as a run recorder, or nil without storage.
func (s *session) recorder() tui.RunRecorder {
	if s.board == nil {
		return nil
	}
	return s.board
}

func (s *session) Close() {
	if s.backend != nil {
		s.backend.Close()
	}
}

func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger("breakout", false)
	if err != nil {
		fatal("setting up logging", err)
	}
	defer closer.Close()

	s, err := newSession(logger)
	if err != nil {
		fatal("loading config", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Debug("starting terminal game", "width", width, "height", height, "fps", flagFPS)
	runErr := tui.Run(s.game, s.recorder(), runtimeConfig(width, height), logger)

	// Close store before potential exit
	s.Close()

	if runErr != nil {
		fatal("running game", runErr)
	}
}
