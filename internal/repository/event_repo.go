package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"filament_dryer/internal/models"

	"github.com/google/uuid"
)

const defaultEventCapacity = 500

// EventMemory keeps the newest events in a bounded ring. Nothing is persisted.
type EventMemory struct {
	mu     sync.RWMutex
	events []models.DashboardEvent
	next   int
	full   bool
}

func NewEventMemory(capacity int) *EventMemory {
	if capacity <= 0 {
		capacity = defaultEventCapacity
	}
	return &EventMemory{events: make([]models.DashboardEvent, capacity)}
}

// Append stores e, filling EventID and OccurredAt when empty and evicting the
// oldest entry once the ring is full.
func (r *EventMemory) Append(ctx context.Context, e models.DashboardEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}
	e.Type = strings.ToUpper(strings.TrimSpace(e.Type))

	r.mu.Lock()
	r.events[r.next] = e
	r.next = (r.next + 1) % len(r.events)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()
	return nil
}

// List returns events within [from, to] (zero bounds are open) and of typ
// (empty means any), oldest first.
func (r *EventMemory) List(ctx context.Context, from, to time.Time, typ string) ([]models.DashboardEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	typ = strings.ToUpper(strings.TrimSpace(typ))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.DashboardEvent, 0, 64)
	for _, ev := range r.ordered() {
		if !from.IsZero() && ev.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && ev.OccurredAt.After(to) {
			continue
		}
		if typ != "" && ev.Type != typ {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// ordered must be called with the lock held.
func (r *EventMemory) ordered() []models.DashboardEvent {
	if !r.full {
		return r.events[:r.next]
	}
	out := make([]models.DashboardEvent, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}
