package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/creditx/internal/models"
)

func TestMemoryHost(t *testing.T) {
	ctx := context.Background()

	t.Run("immediate slots", func(t *testing.T) {
		host := NewMemoryHost(0)
		defer host.Close()

		for range 3 {
			if err := host.RequestSlot(ctx); err != nil {
				t.Fatalf("RequestSlot() error = %v", err)
			}
		}
		if n, _ := host.Count(ctx); n != 3 {
			t.Errorf("Count() = %d, want 3", n)
		}
	})

	t.Run("delayed slots", func(t *testing.T) {
		host := NewMemoryHost(20 * time.Millisecond)
		defer host.Close()

		_ = host.RequestSlot(ctx)
		if n, _ := host.Count(ctx); n != 0 {
			t.Errorf("Count() before delay = %d, want 0", n)
		}
		if got := host.Pending(); got != 1 {
			t.Errorf("Pending() = %d, want 1", got)
		}

		wctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := host.WaitSlots(wctx, 1); err != nil {
			t.Fatalf("WaitSlots() error = %v", err)
		}
		if got := host.Pending(); got != 0 {
			t.Errorf("Pending() after wait = %d, want 0", got)
		}
	})

	t.Run("wait times out", func(t *testing.T) {
		host := NewMemoryHost(time.Second)
		defer host.Close()

		_ = host.RequestSlot(ctx)
		wctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		if err := host.WaitSlots(wctx, 1); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("WaitSlots() error = %v, want DeadlineExceeded", err)
		}
	})

	t.Run("missing fields are no-ops", func(t *testing.T) {
		host := NewMemoryHost(0, models.Credit{Entity: "A"})
		defer host.Close()

		ok, err := host.Write(ctx, 4, models.FieldEntity, "X")
		if err != nil || ok {
			t.Errorf("Write() = %v, %v; want false, nil", ok, err)
		}
		if _, ok, _ := host.Read(ctx, -1, models.FieldEntity); ok {
			t.Error("Read(-1) ok = true, want false")
		}
		if got := host.Notifications(); got != 0 {
			t.Errorf("Notifications() = %d, want 0", got)
		}
	})

	t.Run("remove shifts slots", func(t *testing.T) {
		host := NewMemoryHost(0, models.Credit{Entity: "A"}, models.Credit{Entity: "B"})
		defer host.Close()

		if !host.Remove(0) {
			t.Fatal("Remove(0) = false")
		}
		if host.Remove(3) {
			t.Error("Remove(3) = true, want false")
		}
		if v, _, _ := host.Read(ctx, 0, models.FieldEntity); v != "B" {
			t.Errorf("slot 0 entity = %q, want B", v)
		}
	})

	t.Run("clear cancels pending", func(t *testing.T) {
		host := NewMemoryHost(20*time.Millisecond, models.Credit{Entity: "A"})
		defer host.Close()

		_ = host.RequestSlot(ctx)
		host.Clear()
		time.Sleep(40 * time.Millisecond)

		if n, _ := host.Count(ctx); n != 0 {
			t.Errorf("Count() after Clear = %d, want 0", n)
		}
	})

	t.Run("closed host ignores requests", func(t *testing.T) {
		host := NewMemoryHost(0)
		host.Close()

		_ = host.RequestSlot(ctx)
		if n, _ := host.Count(ctx); n != 0 {
			t.Errorf("Count() = %d, want 0", n)
		}
	})
}
