package poller

import "fmt"

// State is the poller's position in its run loop
type State int32

const (
	StateIdle State = iota
	StateBinding
	StateBroadcasting
	StateSleeping
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBinding:
		return "binding"
	case StateBroadcasting:
		return "broadcasting"
	case StateSleeping:
		return "sleeping"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Terminal reports whether the run loop has exited
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// ErrorPolicy decides what a failed iteration does to the run
type ErrorPolicy int

const (
	// Abort stops at the first failure
	Abort ErrorPolicy = iota
	// Continue records the failure and keeps polling
	Continue
)

func (p ErrorPolicy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Continue:
		return "continue"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy accepts "abort" or "continue"
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "abort":
		return Abort, nil
	case "continue":
		return Continue, nil
	default:
		return Abort, fmt.Errorf("unknown error policy %q (want abort or continue)", s)
	}
}
