package tasks

import (
	"fmt"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/slots"
)

// ProgressUpdate represents a progress event during an editor operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Parse Phase = iota
	Sizing
	Writing
	Lookup
	Append
	Done
)

func (p Phase) String() string {
	switch p {
	case Parse:
		return "parse"
	case Sizing:
		return "sizing"
	case Writing:
		return "writing"
	case Lookup:
		return "lookup"
	case Append:
		return "append"
	case Done:
		return "done"
	default:
		return ""
	}
}

func parsedUpdate(seq models.CreditSequence) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Parse,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Parsed %d credits", len(seq)),
		Data:    seq,
	}
}

// stateUpdate maps a synchronizer state change onto a progress phase.
func stateUpdate(st slots.State, total int) (ProgressUpdate, bool) {
	switch st {
	case slots.StateSizing:
		return ProgressUpdate{Phase: Sizing, Step: 0, Total: total, Message: fmt.Sprintf("Sizing slot list for %d credits...", total)}, true
	case slots.StateWriting:
		return ProgressUpdate{Phase: Writing, Step: 0, Total: total, Message: "Writing credits..."}, true
	default:
		return ProgressUpdate{}, false
	}
}

func readLastUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Lookup,
		Step:    1,
		Total:   3,
		Message: "Reading last credit...",
	}
}

func locateUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Lookup,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("Resolving %s...", name),
	}
}

func relationshipsUpdate(id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Lookup,
		Step:    3,
		Total:   3,
		Message: fmt.Sprintf("Fetching relationships for %s...", id),
	}
}

func appendUpdate(credit models.Credit) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Append,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Appending %s", credit.Entity),
		Data:    credit,
	}
}

func doneUpdate(message string, data any) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: message,
		Data:    data,
	}
}
