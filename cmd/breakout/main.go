// breakout is a single-screen brick breaker for the terminal, a desktop
// window, or SSH.
//
// Usage:
//
//	breakout play            - Play in the terminal
//	breakout window          - Play in a desktop window
//	breakout serve           - Start SSH server for remote play
//	breakout scores          - Show recorded runs and the high score
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.arcade/scores.db)
//	--redis <url>    - Keep scores in Redis instead of SQLite
//	--config <path>  - Load a custom game config YAML
//	--log-file <path>, --debug
//
// BREAKOUT_DB, BREAKOUT_REDIS_URL and BREAKOUT_CONFIG, from the environment
// or a .env file, set the defaults of --db, --redis and --config.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagRedis   string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout is a single-screen brick breaker: one ball, one paddle,
fifty bricks. Clear them all without letting the ball fall past the paddle.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View recorded runs

Examples:
  breakout play
  breakout play --seed 42
  breakout window --config ./my-breakout.yaml
  breakout serve --ssh :2222 --redis redis://localhost:6379/0
  breakout scores --tui`,
}

func init() {
	loadDotEnv()

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("BREAKOUT_DB", "~/.arcade/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", os.Getenv("BREAKOUT_REDIS_URL"), "Redis URL for shared scores (overrides --db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("BREAKOUT_CONFIG"), "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadDotEnv reads .env from the working directory when present.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// fatal prints the error the way every command reports failure and exits.
func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

// newLogger builds the command logger. The UI commands own the terminal, so
// without --log-file they log nowhere; serve logs to stderr.
func newLogger(prefix string, toStderr bool) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadGameConfig loads and validates the game configuration.
func loadGameConfig() (config.BreakoutConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openBackend opens Redis when --redis is set and the SQLite database
// otherwise.
func openBackend() (storage.Backend, error) {
	if flagRedis != "" {
		store, err := storage.OpenRedis(flagRedis)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}
