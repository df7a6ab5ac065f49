package slots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
)

const (
	DefaultSettleTimeout = 2 * time.Second
	DefaultAppendTimeout = time.Second
	DefaultPollInterval  = 50 * time.Millisecond
)

// State is the phase of a fill operation.
type State int

const (
	StateIdle State = iota
	StateSizing
	StateWriting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSizing:
		return "sizing"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	default:
		return ""
	}
}

// Options configures a [Synchronizer]. Zero values fall back to the package defaults.
type Options struct {
	SettleTimeout time.Duration // bound on waiting for a fill's new slots
	AppendTimeout time.Duration // bound on waiting for an appended slot
	PollInterval  time.Duration // slot count polling interval for hosts without [Waiter]
	Logger        *log.Logger
	OnState       func(State)
}

// Synchronizer writes credit sequences into a [Host]'s slot list.
type Synchronizer struct {
	host   Host
	opts   Options
	logger *log.Logger
}

// New creates a Synchronizer for host.
func New(host Host, opts Options) *Synchronizer {
	if opts.SettleTimeout <= 0 {
		opts.SettleTimeout = DefaultSettleTimeout
	}
	if opts.AppendTimeout <= 0 {
		opts.AppendTimeout = DefaultAppendTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Synchronizer{host: host, opts: opts, logger: logger}
}

// Host returns the underlying host.
func (s *Synchronizer) Host() Host {
	return s.host
}

// Observe returns a copy of s that also reports state changes to fn.
func (s *Synchronizer) Observe(fn func(State)) *Synchronizer {
	cp := *s
	prev := s.opts.OnState
	cp.opts.OnState = func(st State) {
		if prev != nil {
			prev(st)
		}
		fn(st)
	}
	return &cp
}

func (s *Synchronizer) enter(st State) {
	s.logger.Debug("sync state", "state", st)
	if s.opts.OnState != nil {
		s.opts.OnState(st)
	}
}

// Fill makes the slot list hold seq, one credit per slot from the top.
//
// Slots beyond len(seq) are left alone, as are fields the credits leave empty.
func (s *Synchronizer) Fill(ctx context.Context, seq models.CreditSequence) error {
	s.enter(StateSizing)

	count, err := s.host.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count slots: %w", err)
	}

	missing := len(seq) - count
	for i := 0; i < missing; i++ {
		if err := s.host.RequestSlot(ctx); err != nil {
			return fmt.Errorf("failed to request slot: %w", err)
		}
	}
	if missing > 0 {
		s.logger.Debug("requested slots", "missing", missing, "want", len(seq))
		if err := s.settle(ctx, len(seq), s.opts.SettleTimeout); err != nil {
			return err
		}
	}

	s.enter(StateWriting)

	count, err = s.host.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count slots: %w", err)
	}
	if count < len(seq) {
		s.logger.Warn("slot list shorter than credits, some writes will be dropped", "slots", count, "credits", len(seq))
	}

	for i, credit := range seq {
		if err := s.writeCredit(ctx, i, credit, models.Credit{}); err != nil {
			return err
		}
	}

	s.enter(StateDone)
	return nil
}

// Append adds one slot and writes credit into it.
func (s *Synchronizer) Append(ctx context.Context, credit models.Credit) error {
	count, err := s.host.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count slots: %w", err)
	}

	if err := s.host.RequestSlot(ctx); err != nil {
		return fmt.Errorf("failed to request slot: %w", err)
	}
	if err := s.settle(ctx, count+1, s.opts.AppendTimeout); err != nil {
		return err
	}

	target := count
	if now, err := s.host.Count(ctx); err != nil {
		return fmt.Errorf("failed to count slots: %w", err)
	} else if now > count {
		target = now - 1
	} else {
		s.logger.Warn("appended slot did not appear, write will be dropped", "slots", now)
	}

	return s.writeCredit(ctx, target, credit, models.Credit{})
}

// Update applies fn to the credit held by the slot at index and writes the result back.
//
// Negative indices count from the end. Only non-empty fields that changed are written.
func (s *Synchronizer) Update(ctx context.Context, index int, fn func(models.Credit) models.Credit) error {
	count, err := s.host.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count slots: %w", err)
	}

	slot, ok := ResolveIndex(index, count)
	if !ok {
		return fmt.Errorf("%w: index %d with %d slots", shared.ErrSlotOutOfRange, index, count)
	}

	current, err := s.readCredit(ctx, slot)
	if err != nil {
		return err
	}

	return s.writeCredit(ctx, slot, fn(current), current)
}

// Read returns the credit held by the slot at index. Negative indices count from the end.
func (s *Synchronizer) Read(ctx context.Context, index int) (models.Credit, error) {
	count, err := s.host.Count(ctx)
	if err != nil {
		return models.Credit{}, fmt.Errorf("failed to count slots: %w", err)
	}

	slot, ok := ResolveIndex(index, count)
	if !ok {
		return models.Credit{}, fmt.Errorf("%w: index %d with %d slots", shared.ErrSlotOutOfRange, index, count)
	}
	return s.readCredit(ctx, slot)
}

// ReadAll snapshots every slot after the first skip slots.
func (s *Synchronizer) ReadAll(ctx context.Context, skip int) (models.CreditSequence, error) {
	count, err := s.host.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count slots: %w", err)
	}
	if skip < 0 {
		skip = 0
	}

	seq := models.CreditSequence{}
	for i := skip; i < count; i++ {
		credit, err := s.readCredit(ctx, i)
		if err != nil {
			return nil, err
		}
		seq = append(seq, credit)
	}
	return seq, nil
}

// settle waits for the host to report want slots, bounded by timeout.
//
// An expired wait is logged and swallowed; only cancellation of ctx itself is returned.
func (s *Synchronizer) settle(ctx context.Context, want int, timeout time.Duration) error {
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	if w, ok := s.host.(Waiter); ok {
		err = w.WaitSlots(wctx, want)
	} else {
		err = s.poll(wctx, want)
	}

	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed waiting for slots: %w", err)
	}

	s.logger.Warn("slots did not settle in time", "want", want, "timeout", timeout)
	return nil
}

func (s *Synchronizer) poll(ctx context.Context, want int) error {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		count, err := s.host.Count(ctx)
		if err != nil {
			return err
		}
		if count >= want {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Synchronizer) readCredit(ctx context.Context, slot int) (models.Credit, error) {
	var credit models.Credit
	for _, f := range models.Fields {
		v, ok, err := s.host.Read(ctx, slot, f)
		if err != nil {
			return models.Credit{}, fmt.Errorf("failed to read slot %d %s: %w", slot, f, err)
		}
		if ok {
			credit = credit.With(f, v)
		}
	}
	return credit, nil
}

// writeCredit writes the non-empty fields of credit that differ from prev.
func (s *Synchronizer) writeCredit(ctx context.Context, slot int, credit, prev models.Credit) error {
	for _, f := range models.Fields {
		v := credit.Get(f)
		if v == "" || v == prev.Get(f) {
			continue
		}

		ok, err := s.host.Write(ctx, slot, f, v)
		if err != nil {
			return fmt.Errorf("failed to write slot %d %s: %w", slot, f, err)
		}
		if !ok {
			s.logger.Debug("dropped write to missing field", "slot", slot, "field", f)
		}
	}
	return nil
}
