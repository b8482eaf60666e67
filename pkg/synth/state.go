package synth

// State is the session engine state for one synthesize call.
type State int

const (
	StateIdle State = iota
	StateAwaitingTurnStart
	StateStreaming
	StateCompleted
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingTurnStart:
		return "AWAITING_TURN_START"
	case StateStreaming:
		return "STREAMING"
	case StateCompleted:
		return "COMPLETED"
	case StateClosed:
		return "CLOSED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateClosed || s == StateFailed
}
