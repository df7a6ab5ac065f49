package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// User-input errors, reported to the user and aborting before any mutation
	ErrMissingInput    = fmt.Errorf("missing input")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Lookup misses, reported to the user and aborting the flow
	ErrEntityNotFound       = fmt.Errorf("entity not found")
	ErrRelationshipNotFound = fmt.Errorf("relationship not found")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Slot list errors
	ErrSlotOutOfRange = fmt.Errorf("slot index out of range")
	ErrBusy           = fmt.Errorf("another operation is in progress")
)
