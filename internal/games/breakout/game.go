package breakout

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// GameID identifies the game in score storage.
const GameID = "breakout"

// Visual characters for terminal rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BrickChar  = '█'
)

// Minimum terminal size that still shows every brick column.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// HighScoreStore persists the best score across sessions.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State     State
	Score     int
	HighScore int
	// Finished is true only on the tick a run ends (game over or win).
	Finished bool
}

// Option configures a Game.
type Option func(*Game)

// WithStore sets the high score store. Without one the high score lives
// only in memory.
func WithStore(s HighScoreStore) Option {
	return func(g *Game) {
		g.store = s
	}
}

// WithLogger sets the logger used for state changes and storage failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game owns the world and drives it one tick at a time. It also persists
// the high score and renders to the terminal.
type Game struct {
	cfg    config.BreakoutConfig
	layout Layout
	world  World
	rng    *SimpleRNG
	store  HighScoreStore
	logger *log.Logger

	tickCount int
}

// New creates a game from a validated configuration. Call Reset before
// the first Step.
func New(cfg config.BreakoutConfig, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		layout: NewLayout(cfg),
		logger: log.New(io.Discard),
		rng:    NewSimpleRNG(1),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.world = NewWorld(g.layout, 0)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset seeds the RNG, loads the high score and returns to the title screen.
// Front ends call it once per session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.rng = NewSimpleRNG(runtime.Seed)
	g.tickCount = 0
	g.world = NewWorld(g.layout, g.loadHighScore())
}

func (g *Game) loadHighScore() int {
	if g.store == nil {
		return 0
	}
	high, err := g.store.LoadHighScore()
	if err != nil {
		g.logger.Warn("could not load high score", "error", err)
		return 0
	}
	return max(high, 0)
}

func (g *Game) saveHighScore() {
	if g.store == nil {
		return
	}
	if err := g.store.SaveHighScore(g.world.Score.High); err != nil {
		g.logger.Warn("could not save high score", "score", g.world.Score.High, "error", err)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.Intent) StepResult {
	g.tickCount++

	if in.Restart {
		if next, ok := Next(g.world.State, TriggerRestart); ok {
			from := g.world.State
			g.world = g.world.relaunch(g.rng.Sign())
			g.world.State = next
			g.logger.Debug("run started", "from", from, "dx", g.world.Ball.DX, "tick", g.tickCount)
			return g.result(false)
		}
	}

	if !g.world.State.Active() {
		return g.result(false)
	}

	next, ev := Tick(g.world, in)
	from := g.world.State
	g.world = next

	if ev.HighScoreChanged {
		g.saveHighScore()
	}

	finished := ev.Trigger != TriggerNone
	if finished {
		g.logger.Debug("run ended",
			"from", from,
			"to", g.world.State,
			"trigger", ev.Trigger,
			"score", g.world.Score.Current,
			"tick", g.tickCount,
		)
	}
	return g.result(finished)
}

func (g *Game) result(finished bool) StepResult {
	return StepResult{
		State:     g.world.State,
		Score:     g.world.Score.Current,
		HighScore: g.world.Score.High,
		Finished:  finished,
	}
}

// World returns the current world for render adapters. The brick grid is
// copy-on-write, so the returned value stays valid after later steps.
func (g *Game) World() World {
	return g.world
}

// State returns the current game state.
func (g *Game) State() State {
	return g.world.State
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.BreakoutConfig {
	return g.cfg
}

// StatusText returns the overlay lines shown when not playing. All three are
// empty while playing, and hint is empty on the title screen.
func (g *Game) StatusText() (title, subtitle, hint string) {
	key := KeyLabel(g.cfg.Input.Restart)
	switch g.world.State {
	case StateStart:
		return "BREAKOUT", fmt.Sprintf("Press %s to start", key), ""
	case StateGameOver:
		return "BREAKOUT", "GAME OVER", fmt.Sprintf("Score: %d  |  %s to restart", g.world.Score.Current, key)
	case StateWin:
		return "BREAKOUT", "YOU WIN!", fmt.Sprintf("Score: %d  |  %s to play again", g.world.Score.Current, key)
	default:
		return "", "", ""
	}
}

// KeyLabel returns a display name for the first key of a binding.
func KeyLabel(keys []string) string {
	if len(keys) == 0 {
		return "?"
	}
	switch k := keys[0]; k {
	case " ", "space":
		return "SPACE"
	default:
		return strings.ToUpper(k)
	}
}

// Render draws the current state into a terminal screen buffer, scaling the
// canvas to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorDefault)
		return
	}

	g.renderSprites(dst, newProjection(g.layout, dst.Width(), dst.Height()))
	g.renderHUD(dst)

	if !g.world.State.Active() {
		g.renderOverlay(dst)
	}
}

// projection maps canvas units onto screen cells.
type projection struct {
	sx, sy float64
}

func newProjection(l Layout, screenW, screenH int) projection {
	return projection{
		sx: float64(screenW) / l.CanvasW,
		sy: float64(screenH) / l.CanvasH,
	}
}

func (p projection) col(x float64) int {
	return int(x * p.sx)
}

func (p projection) row(y float64) int {
	return int(y * p.sy)
}

// span returns the first cell and cell count covering [x, x+w), at least one.
func (p projection) span(x, w float64) (int, int) {
	start := p.col(x)
	return start, max(p.col(x+w)-start, 1)
}

// renderSprites draws the scene scaled to cells. Bricks keep a gap cell
// when wide enough so neighbours stay distinguishable; the ball is one cell
// at its center.
func (g *Game) renderSprites(dst *core.Screen, p projection) {
	for _, s := range g.Sprites() {
		switch s.Kind {
		case SpriteBrick:
			x, n := p.span(s.Box.X, s.Box.W)
			if n >= 3 {
				n--
			}
			dst.DrawRect(core.NewCellRect(x, p.row(s.Box.Y), n, 1), BrickChar, s.Color)
		case SpritePaddle:
			x, n := p.span(s.Box.X, s.Box.W)
			dst.DrawRect(core.NewCellRect(x, p.row(s.Box.Y), n, 1), PaddleChar, s.Color)
		case SpriteBall:
			dst.SetCell(p.col(s.Box.CenterX()), p.row(s.Box.Y+s.Box.H/2), BallChar, s.Color)
		}
	}
}

// renderHUD draws the score top-left and the high score top-right.
func (g *Game) renderHUD(dst *core.Screen) {
	score, high := g.HUDText()
	dst.DrawColorText(1, 0, score, g.cfg.Colors.Text)
	dst.DrawTextRight(dst.Width()-2, 0, high, g.cfg.Colors.Text)
}

// renderOverlay draws the centered title and status box.
func (g *Game) renderOverlay(dst *core.Screen) {
	title, subtitle, hint := g.StatusText()

	boxW := max(len(title), len(subtitle), len(hint)) + 6
	boxH := 5
	if hint != "" {
		boxH = 7
	}
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewCellRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, g.cfg.Colors.Text)

	center := func(y int, text string, c core.Color) {
		dst.DrawColorText(boxX+(boxW-len(text))/2, y, text, c)
	}
	center(boxY+1, title, g.cfg.Colors.Text)
	if g.world.State == StateStart {
		center(boxY+3, subtitle, g.cfg.Colors.Text)
	} else {
		center(boxY+3, subtitle, g.cfg.Colors.Status)
	}
	if hint != "" {
		center(boxY+5, hint, g.cfg.Colors.Text)
	}
}
