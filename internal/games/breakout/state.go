package breakout

// State is the coarse game state. Exactly one is active at a time.
type State int

const (
	StateStart    State = iota // Title screen, waiting for the first restart
	StatePlaying               // Ball in play, physics running
	StateGameOver              // Ball fell past the bottom edge
	StateWin                   // Every brick destroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePlaying:
		return "PLAYING"
	case StateGameOver:
		return "GAME_OVER"
	case StateWin:
		return "WIN"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether physics runs in this state.
func (s State) Active() bool {
	return s == StatePlaying
}

// Trigger is an event that may move the state machine.
type Trigger int

const (
	TriggerNone          Trigger = iota
	TriggerRestart               // Player pressed the restart key
	TriggerBallLost              // Predicted ball bottom passed the canvas bottom
	TriggerBricksCleared         // No active brick left
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerNone:
		return "none"
	case TriggerRestart:
		return "restart"
	case TriggerBallLost:
		return "ball_lost"
	case TriggerBricksCleared:
		return "bricks_cleared"
	default:
		return "unknown"
	}
}

// transitions is the complete table. Pairs not listed do not transition;
// in particular a restart while playing is ignored.
var transitions = map[State]map[Trigger]State{
	StateStart: {
		TriggerRestart: StatePlaying,
	},
	StatePlaying: {
		TriggerBallLost:      StateGameOver,
		TriggerBricksCleared: StateWin,
	},
	StateGameOver: {
		TriggerRestart: StatePlaying,
	},
	StateWin: {
		TriggerRestart: StatePlaying,
	},
}

// Next returns the state reached from s on t, and false if t does not
// apply in s.
func Next(s State, t Trigger) (State, bool) {
	next, ok := transitions[s][t]
	if !ok {
		return s, false
	}
	return next, true
}

// Outcome labels a finished run for storage.
func (s State) Outcome() string {
	switch s {
	case StateGameOver:
		return "game_over"
	case StateWin:
		return "win"
	default:
		return ""
	}
}
