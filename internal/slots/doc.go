// Package slots keeps an editable slot list in sync with a [models.CreditSequence].
//
// # Host
//
// The slot list belongs to a host UI (a browser page, the terminal editor). The [Host] interface
// exposes the four primitives the synchronizer needs: request a slot, count slots, read a field and
// write a field. Writes must go through the host's change notification so its own state sees them.
//
// Adding a slot is asynchronous and the host may not say when it is done. Hosts that can observe
// slot creation implement [Waiter]; for the rest the [Synchronizer] polls the slot count until it
// matches or a bounded settle timeout expires. Either way the wait is best effort: writes aimed at
// slots that never appeared are dropped, not reported.
//
// # Fill
//
// [Synchronizer.Fill] runs a small state machine:
//
//	Sizing  -> request one slot per missing entry, wait for them to settle
//	Writing -> re-count, then write every non-empty field of credit i into slot i
//	Done
//
// Empty values are never written, so a fill is a partial update of whatever the slots held.
//
// # Concurrency
//
// A Synchronizer is not safe for overlapping operations. Two fills whose settling windows overlap
// will interleave their writes; callers serialize them.
package slots
