// Package window runs the game in a desktop window through Ebitengine. The
// window is the logical canvas itself, and held keys come straight from the
// keyboard state, so no hold emulation is needed.
package window

import (
	"errors"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// Debug font metrics of ebitenutil.DebugPrint.
const (
	glyphW = 6
	glyphH = 16
)

// RunRecorder stores finished runs. storage.Board implements it.
type RunRecorder interface {
	RecordRun(score int, outcome string) error
}

// Window adapts a breakout.Game to ebiten.Game.
type Window struct {
	game     *breakout.Game
	recorder RunRecorder
	logger   *log.Logger
	inbox    core.IntentInbox

	left, right, restart, quit []ebiten.Key

	width, height int
	background    color.RGBA
}

// New creates a window adapter. recorder and logger may be nil.
func New(game *breakout.Game, recorder RunRecorder, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := game.Config()
	w := &Window{
		game:       game,
		recorder:   recorder,
		logger:     logger,
		width:      int(cfg.Canvas.Width),
		height:     int(cfg.Canvas.Height),
		background: color.RGBA{A: 0xff},
	}
	w.left = w.resolve(cfg.Input.Left)
	w.right = w.resolve(cfg.Input.Right)
	w.restart = w.resolve(cfg.Input.Restart)
	w.quit = w.resolve(cfg.Input.Quit)
	return w
}

// resolve maps configured key names to ebiten keys. Names with no key,
// such as terminal chords, are skipped.
func (w *Window) resolve(names []string) []ebiten.Key {
	keys := make([]ebiten.Key, 0, len(names))
	seen := make(map[ebiten.Key]bool)
	for _, name := range names {
		k, ok := lookupKey(name)
		if !ok {
			w.logger.Debug("key has no window binding", "key", name)
			continue
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func lookupKey(name string) (ebiten.Key, bool) {
	switch strings.ToLower(name) {
	case " ", "space":
		return ebiten.KeySpace, true
	case "left":
		return ebiten.KeyArrowLeft, true
	case "right":
		return ebiten.KeyArrowRight, true
	case "up":
		return ebiten.KeyArrowUp, true
	case "down":
		return ebiten.KeyArrowDown, true
	case "enter":
		return ebiten.KeyEnter, true
	case "esc":
		return ebiten.KeyEscape, true
	case "tab":
		return ebiten.KeyTab, true
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, false
	}
	return k, true
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Update samples the keyboard and advances the game by one tick.
func (w *Window) Update() error {
	if anyJustPressed(w.quit) {
		return ebiten.Termination
	}

	w.inbox.SetLeft(anyPressed(w.left))
	w.inbox.SetRight(anyPressed(w.right))
	if anyJustPressed(w.restart) {
		w.inbox.PressRestart()
	}

	result := w.game.Step(w.inbox.Sample())
	if result.Finished && result.Score > 0 && w.recorder != nil {
		if err := w.recorder.RecordRun(result.Score, result.State.Outcome()); err != nil {
			w.logger.Warn("could not record run", "score", result.Score, "error", err)
		}
	}
	return nil
}

// Draw renders the scene at canvas resolution.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.background)

	for _, s := range w.game.Sprites() {
		b := s.Box
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), s.Color.RGBA(), false)
	}

	score, high := w.game.HUDText()
	ebitenutil.DebugPrintAt(screen, score, 8, 8)
	ebitenutil.DebugPrintAt(screen, high, w.width-8-len(high)*glyphW, 8)

	if w.game.State().Active() {
		return
	}
	title, subtitle, hint := w.game.StatusText()
	y := w.height/2 - glyphH*2
	for _, line := range []string{title, subtitle, hint} {
		if line != "" {
			ebitenutil.DebugPrintAt(screen, line, (w.width-len(line)*glyphW)/2, y)
		}
		y += glyphH + 4
	}
}

// Layout keeps the logical screen at the canvas size; ebiten scales it to
// the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

// Run opens the window and blocks until it is closed or a quit key is
// pressed.
func Run(game *breakout.Game, recorder RunRecorder, runtime core.RuntimeConfig, logger *log.Logger) error {
	game.Reset(runtime)
	w := New(game, recorder, logger)

	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if runtime.TickRate > 0 {
		ebiten.SetTPS(runtime.TickRate)
	}

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

var _ ebiten.Game = (*Window)(nil)

