package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// KeyMap holds the in-game key bindings built from the input configuration.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(in config.InputConfig) KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys(in.Left...),
			key.WithHelp(helpKeys(in.Left), "left"),
		),
		Right: key.NewBinding(
			key.WithKeys(in.Right...),
			key.WithHelp(helpKeys(in.Right), "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys(in.Restart...),
			key.WithHelp(helpKeys(in.Restart), "start"),
		),
		Quit: key.NewBinding(
			key.WithKeys(in.Quit...),
			key.WithHelp(helpKeys(in.Quit), "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Restart},
		{k.Screenshot, k.Quit},
	}
}

// helpKeys renders a key list for the help bar. Only the first two keys are
// shown to keep the bar on one line.
func helpKeys(keys []string) string {
	names := make([]string, 0, 2)
	for _, k := range keys {
		if len(names) == 2 {
			break
		}
		switch k {
		case " ":
			k = "space"
		case "left":
			k = "←"
		case "right":
			k = "→"
		}
		names = append(names, k)
	}
	return strings.Join(names, "/")
}

// heldInput turns terminal key presses into held direction levels.
// Terminals report presses and auto-repeats but never releases, so a
// direction stays held for holdTicks ticks after its last press. Pressing
// the opposite direction releases the other one at once.
type heldInput struct {
	inbox     core.IntentInbox
	holdTicks int
	left      int // Ticks of hold remaining
	right     int
}

func newHeldInput(holdTicks int) heldInput {
	return heldInput{holdTicks: max(holdTicks, 1)}
}

func (h *heldInput) pressLeft() {
	h.left, h.right = h.holdTicks, 0
	h.inbox.SetLeft(true)
	h.inbox.SetRight(false)
}

func (h *heldInput) pressRight() {
	h.right, h.left = h.holdTicks, 0
	h.inbox.SetRight(true)
	h.inbox.SetLeft(false)
}

func (h *heldInput) pressRestart() {
	h.inbox.PressRestart()
}

// sample returns this tick's intent and ages the holds.
func (h *heldInput) sample() core.Intent {
	in := h.inbox.Sample()
	if h.left > 0 {
		h.left--
		if h.left == 0 {
			h.inbox.SetLeft(false)
		}
	}
	if h.right > 0 {
		h.right--
		if h.right == 0 {
			h.inbox.SetRight(false)
		}
	}
	return in
}

func (h *heldInput) release() {
	h.inbox.Release()
	h.left, h.right = 0, 0
}
