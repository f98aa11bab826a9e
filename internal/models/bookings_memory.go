package models

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryRepo keeps bookings in process memory. Used for local runs
// (BOOKING_STORE=memory) and tests.
type MemoryRepo struct {
	mu       sync.Mutex
	lastID   int64
	bookings []*Booking
	now      func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{now: time.Now}
}

func (m *MemoryRepo) EnsureSchema(context.Context) error {
	return nil
}

func (m *MemoryRepo) CreateBooking(ctx context.Context, b *Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Validate.Struct(b); err != nil {
		return fmt.Errorf("invalid booking: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	b.ID = m.lastID
	b.CreatedAt = m.now().UTC()

	stored := *b
	m.bookings = append(m.bookings, &stored)
	return nil
}

func (m *MemoryRepo) ListBookingsByUser(ctx context.Context, userEmail string) ([]*Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Booking
	for _, b := range m.bookings {
		if b.UserEmail == userEmail {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// All returns a copy of every stored booking in insertion order.
func (m *MemoryRepo) All() []Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out
}
