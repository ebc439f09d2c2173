package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// RunRecorder stores finished runs. storage.Board implements it.
type RunRecorder interface {
	RecordRun(score int, outcome string) error
}

// Model is the Bubble Tea model for playing Breakout.
type Model struct {
	game     *breakout.Game
	recorder RunRecorder
	logger   *log.Logger
	screen   *core.Screen
	renderer *ScreenRenderer
	keys     KeyMap
	help     help.Model
	input    heldInput
	config   core.RuntimeConfig
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game. recorder and
// logger may be nil.
func NewModel(game *breakout.Game, recorder RunRecorder, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := game.Config().Input
	m := Model{
		game:     game,
		recorder: recorder,
		logger:   logger,
		renderer: NewScreenRenderer(nil),
		keys:     NewKeyMap(input),
		help:     help.New(),
		input:    newHeldInput(input.HoldTicks),
		config:   cfg,
	}
	m.screen = core.NewScreen(m.playfieldSize(cfg.ScreenW, cfg.ScreenH))
	m.help.Width = cfg.ScreenW
	return m
}

// WithRenderer returns the model drawing through r, used for SSH sessions
// whose color support differs from the server's stdout.
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	m.renderer = NewScreenRenderer(r)
	return m
}

// playfieldSize reserves the last terminal row for the help bar.
func (m Model) playfieldSize(w, h int) (int, int) {
	if h > 1 {
		h--
	}
	return w, h
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.input.release()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Left):
		m.input.pressLeft()
	case key.Matches(msg, m.keys.Right):
		m.input.pressRight()
	case key.Matches(msg, m.keys.Restart):
		m.input.pressRestart()
	}
	return m, nil
}

// handleResize processes window resize events. The playfield is rescaled,
// the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(m.playfieldSize(msg.Width, msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	result := m.game.Step(m.input.sample())
	if result.Finished {
		m.recordRun(result)
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a finished run. Empty runs are not recorded.
func (m Model) recordRun(result breakout.StepResult) {
	if m.recorder == nil || result.Score == 0 {
		return
	}
	if err := m.recorder.RecordRun(result.Score, result.State.Outcome()); err != nil {
		m.logger.Warn("could not record run", "score", result.Score, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given model.
func Run(game *breakout.Game, recorder RunRecorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, recorder, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
