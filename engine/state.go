package engine

// State is the round engine's position in a game
type State int

const (
	StateIdle State = iota // Before the first round of a game
	StateShowing
	StateAwaitingInput
	StateRoundComplete
	StateMistake
	StateGameOver
)

var stateNames = [...]string{
	StateIdle:          "idle",
	StateShowing:       "showing",
	StateAwaitingInput: "awaiting_input",
	StateRoundComplete: "round_complete",
	StateMistake:       "mistake",
	StateGameOver:      "game_over",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// acceptsMovement reports whether LEFT/RIGHT move the selection
func (s State) acceptsMovement() bool {
	return s == StateAwaitingInput || s == StateRoundComplete
}
