package slots

import (
	"context"

	"github.com/desertthunder/creditx/internal/models"
)

// Host is the set of slot operations a host UI exposes.
type Host interface {
	// RequestSlot asks the host to add one slot at the end. The slot may appear later.
	RequestSlot(ctx context.Context) error

	// Count returns the number of slots currently rendered.
	Count(ctx context.Context) (int, error)

	// Read returns the value of field f of slot. ok is false when the field does not exist.
	Read(ctx context.Context, slot int, f models.Field) (value string, ok bool, err error)

	// Write sets field f of slot and fires the host's change notification.
	// ok is false when the field does not exist; nothing is written in that case.
	Write(ctx context.Context, slot int, f models.Field, value string) (ok bool, err error)
}

// Waiter is implemented by hosts that can signal when slots have materialized.
type Waiter interface {
	// WaitSlots blocks until at least n slots exist or ctx is done.
	WaitSlots(ctx context.Context, n int) error
}

// ResolveIndex maps a possibly negative index onto a list of the given length.
//
// Negative indices count from the end (-1 is the last slot).
func ResolveIndex(index, length int) (int, bool) {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return 0, false
	}
	return index, true
}
