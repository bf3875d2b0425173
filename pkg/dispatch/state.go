package dispatch

import "fmt"

type State uint32

const (
	StatePending                 State = iota // pending
	StateRunning                              // running
	StateTerminatedOnChannelError             // terminated on channel error
	StateTerminatedOnDecodeError              // terminated on decode error
	// StateCanceled means the context given to Run was done
	// before the failure could be delivered.
	StateCanceled // canceled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateTerminatedOnChannelError:
		return "terminated on channel error"
	case StateTerminatedOnDecodeError:
		return "terminated on decode error"
	case StateCanceled:
		return "canceled"
	}
	return fmt.Sprintf("State(%d)", uint32(s))
}
