package session

import "time"

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Transition is delivered to listeners on every state change.
type Transition struct {
	From     State
	To       State
	Provider string
	// Err is set when the transition was caused by a failure.
	Err error
	At  time.Time
}
