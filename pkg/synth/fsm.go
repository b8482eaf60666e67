package synth

import "sync"

// stateMachine tracks the per-call session state. A session never revisits
// IDLE mid-turn and ends in exactly one terminal state.
type stateMachine struct {
	currentState State
	mu           sync.RWMutex
}

func newStateMachine() *stateMachine {
	return &stateMachine{currentState: StateIdle}
}

// State returns the current state.
func (sm *stateMachine) State() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// transitionValid checks if a state transition is valid (must be called with lock held).
func (sm *stateMachine) transitionValid(from, to State) bool {
	validTransitions := map[State][]State{
		StateIdle:              {StateAwaitingTurnStart, StateClosed, StateFailed},
		StateAwaitingTurnStart: {StateStreaming, StateClosed, StateFailed},
		StateStreaming:         {StateStreaming, StateCompleted, StateClosed, StateFailed},
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return false
	}
	for _, allowed := range allowedStates {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves to a new state with validation.
func (sm *stateMachine) Transition(state State) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.transitionValid(sm.currentState, state) {
		return &InvalidTransitionError{
			From: sm.currentState,
			To:   state,
		}
	}
	sm.currentState = state
	return nil
}

// InvalidTransitionError represents an invalid state transition attempt.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return "invalid state transition from " + e.From.String() + " to " + e.To.String()
}
