// internal/status/snapshot.go
package status

import (
	"fmt"

	"github.com/tamzrod/jointstream/internal/link"
)

// Snapshot is the connection status pushed to viewers.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

// FromState renders a link state for viewers.
func FromState(st link.State, maxAttempts int) Snapshot {
	switch {
	case st.Connected:
		return Snapshot{Connected: true, Message: MessageConnected}
	case maxAttempts > 0 && st.Attempts >= maxAttempts:
		return Snapshot{Connected: false, Message: MessageGaveUp}
	default:
		return Snapshot{Connected: false, Message: MessageDisconnected}
	}
}

// FromTransition is FromState plus the failure reason, if any.
func FromTransition(tr link.Transition, maxAttempts int) Snapshot {
	s := FromState(tr.State, maxAttempts)
	if tr.Err != nil {
		s.Message = fmt.Sprintf("%s: %v", s.Message, tr.Err)
	}
	return s
}
