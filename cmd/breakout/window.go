package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open Breakout in a desktop window at the canvas size. Held keys are
read directly from the keyboard.

Controls:
  Left/A, Right/D  - Move paddle
  Space            - Start / restart
  Q/Esc            - Quit

Examples:
  breakout window
  breakout window --fps 120`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger("breakout", false)
	if err != nil {
		fatal("setting up logging", err)
	}
	defer closer.Close()

	s, err := newSession(logger)
	if err != nil {
		fatal("loading config", err)
	}

	var recorder window.RunRecorder
	if s.board != nil {
		recorder = s.board
	}

	w, h := int(s.cfg.Canvas.Width), int(s.cfg.Canvas.Height)
	runErr := window.Run(s.game, recorder, runtimeConfig(w, h), logger)

	s.Close()

	if runErr != nil {
		fatal("running window", runErr)
	}
}
