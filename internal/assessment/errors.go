package assessment

import (
	"errors"
	"fmt"
)

// ErrSessionStopped is returned by any operation attempted after the
// session reached its terminal stage. State is not corrupted.
var ErrSessionStopped = errors.New("session already stopped")

// ErrNotStarted is returned when a response is submitted before any
// item was served.
var ErrNotStarted = errors.New("session not started")

// StaleResponseError reports a submission for an item that is not the
// one currently awaiting a response: a duplicate of an already-recorded
// item, or a mismatch against the cached selection. The write is
// rejected and the cached item is re-served; the session is unharmed.
type StaleResponseError struct {
	ItemID string
	// Recorded is true when the item already has a recorded response.
	Recorded bool
}

func (e *StaleResponseError) Error() string {
	if e.Recorded {
		return fmt.Sprintf("response for %q already recorded", e.ItemID)
	}
	return fmt.Sprintf("response for %q does not match the pending item", e.ItemID)
}

// InvalidResponseError reports a response value outside the item's
// category range.
type InvalidResponseError struct {
	ItemID     string
	Value      int
	Categories int
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("response %d for %q out of range [0, %d)", e.Value, e.ItemID, e.Categories)
}
