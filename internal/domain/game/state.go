package game

import (
	"fmt"
	"strings"
)

// State is the provider lifecycle of a single game.
type State string

const (
	StateUnstarted  State = "unstarted"
	StateInProgress State = "inProgress"
	StateCompleted  State = "completed"
	StateUnneeded   State = "unneeded"
)

// ParseState maps the provider's state string onto the closed enum.
func ParseState(raw string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "unstarted":
		return StateUnstarted, nil
	case "inprogress", "in_progress":
		return StateInProgress, nil
	case "completed":
		return StateCompleted, nil
	case "unneeded":
		return StateUnneeded, nil
	default:
		return "", fmt.Errorf("unknown game state %q", raw)
	}
}

func (s State) Valid() bool {
	switch s {
	case StateUnstarted, StateInProgress, StateCompleted, StateUnneeded:
		return true
	default:
		return false
	}
}

// Settled reports states the state poller no longer looks at.
func (s State) Settled() bool {
	return s == StateCompleted || s == StateUnneeded
}

// CanAdvanceTo reports whether moving from s to next keeps the lifecycle
// monotonic: unstarted -> inProgress -> completed, or any unsettled state to
// unneeded. Staying in the same state is not an advance.
func (s State) CanAdvanceTo(next State) bool {
	if !s.Valid() || !next.Valid() || s == next || s.Settled() {
		return false
	}
	if next == StateUnneeded {
		return true
	}
	return rank(next) > rank(s)
}

func rank(s State) int {
	switch s {
	case StateUnstarted:
		return 0
	case StateInProgress:
		return 1
	case StateCompleted:
		return 2
	default:
		return -1
	}
}
