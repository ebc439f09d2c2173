package core

// Intent is the input sampled for one simulation tick, abstracted from
// physical keys. MoveLeft and MoveRight are levels (held while the key is
// down); Restart is an edge that is true on exactly one tick per press.
type Intent struct {
	MoveLeft  bool
	MoveRight bool
	Restart   bool
}

// IntentInbox decouples input event timing from the tick loop. Front ends
// write key events into it as they arrive and the tick loop calls Sample
// once per tick. It is not synchronized: the writer and the sampler must
// run on the same goroutine, which holds for both the Bubble Tea update loop
// and the Ebiten update callback.
type IntentInbox struct {
	left, right bool
	restart     bool
}

// SetLeft records a key-down (true) or key-up (false) for the left intent.
func (b *IntentInbox) SetLeft(down bool) {
	b.left = down
}

// SetRight records a key-down (true) or key-up (false) for the right intent.
func (b *IntentInbox) SetRight(down bool) {
	b.right = down
}

// PressRestart raises the restart edge. Multiple presses between two samples
// collapse into one.
func (b *IntentInbox) PressRestart() {
	b.restart = true
}

// Sample returns the intent for the current tick and consumes the restart
// edge. Direction levels are left as they are.
func (b *IntentInbox) Sample() Intent {
	in := Intent{
		MoveLeft:  b.left,
		MoveRight: b.right,
		Restart:   b.restart,
	}
	b.restart = false
	return in
}

// Release clears all held directions and any pending restart.
func (b *IntentInbox) Release() {
	*b = IntentInbox{}
}
