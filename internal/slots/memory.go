package slots

import (
	"context"
	"sync"
	"time"

	"github.com/desertthunder/creditx/internal/models"
)

// Change describes one write observed by a [MemoryHost] listener.
type Change struct {
	Slot  int
	Field models.Field
	Value string
}

// MemoryHost is an in-memory [Host] whose slots appear AddDelay after they are requested.
//
// It implements [Waiter]. The terminal editor renders one, and tests use it to model slow hosts.
type MemoryHost struct {
	mu            sync.Mutex
	slots         []models.Credit
	addDelay      time.Duration
	pending       []*time.Timer
	changed       chan struct{}
	notifications int
	listeners     []func(Change)
	generation    int
	closed        bool
}

// NewMemoryHost creates a host holding initial, one slot per credit.
func NewMemoryHost(addDelay time.Duration, initial ...models.Credit) *MemoryHost {
	slots := make([]models.Credit, len(initial))
	copy(slots, initial)

	return &MemoryHost{
		slots:    slots,
		addDelay: addDelay,
		changed:  make(chan struct{}),
	}
}

// broadcast wakes every waiter. Callers hold mu.
func (m *MemoryHost) broadcast() {
	close(m.changed)
	m.changed = make(chan struct{})
}

// SetAddDelay changes the latency applied to later slot requests.
func (m *MemoryHost) SetAddDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDelay = d
}

func (m *MemoryHost) RequestSlot(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	if m.addDelay <= 0 {
		m.slots = append(m.slots, models.Credit{})
		m.broadcast()
		return nil
	}

	gen := m.generation
	var t *time.Timer
	t = time.AfterFunc(m.addDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.dropTimer(t)
		if m.closed || m.generation != gen {
			return
		}
		m.slots = append(m.slots, models.Credit{})
		m.broadcast()
	})
	m.pending = append(m.pending, t)
	return nil
}

func (m *MemoryHost) dropTimer(t *time.Timer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

func (m *MemoryHost) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots), nil
}

func (m *MemoryHost) Read(ctx context.Context, slot int, f models.Field) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slot < 0 || slot >= len(m.slots) {
		return "", false, nil
	}
	return m.slots[slot].Get(f), true, nil
}

// Write sets a field and notifies listeners after the lock is released.
func (m *MemoryHost) Write(ctx context.Context, slot int, f models.Field, value string) (bool, error) {
	m.mu.Lock()
	if slot < 0 || slot >= len(m.slots) {
		m.mu.Unlock()
		return false, nil
	}
	m.slots[slot] = m.slots[slot].With(f, value)
	m.notifications++
	m.broadcast()
	listeners := append([]func(Change){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(Change{Slot: slot, Field: f, Value: value})
	}
	return true, nil
}

func (m *MemoryHost) WaitSlots(ctx context.Context, n int) error {
	for {
		m.mu.Lock()
		if len(m.slots) >= n {
			m.mu.Unlock()
			return nil
		}
		ch := m.changed
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

// OnChange registers fn to be called after every write.
func (m *MemoryHost) OnChange(fn func(Change)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Notifications returns the number of change notifications fired so far.
func (m *MemoryHost) Notifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifications
}

// Pending returns the number of requested slots that have not appeared yet.
func (m *MemoryHost) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Remove drops slot i, shifting later slots up.
func (m *MemoryHost) Remove(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i < 0 || i >= len(m.slots) {
		return false
	}
	m.slots = append(m.slots[:i], m.slots[i+1:]...)
	m.broadcast()
	return true
}

// Clear removes every slot and cancels pending requests.
func (m *MemoryHost) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopPending()
	m.slots = nil
	m.broadcast()
}

// Snapshot returns a copy of the current slots.
func (m *MemoryHost) Snapshot() models.CreditSequence {
	m.mu.Lock()
	defer m.mu.Unlock()

	seq := make(models.CreditSequence, len(m.slots))
	copy(seq, m.slots)
	return seq
}

// Close cancels pending slot requests. Later requests are ignored.
func (m *MemoryHost) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopPending()
	m.closed = true
	return nil
}

func (m *MemoryHost) stopPending() {
	m.generation++
	for _, t := range m.pending {
		t.Stop()
	}
	m.pending = nil
}
