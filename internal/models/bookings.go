package models

import (
	"context"
	"time"
)

// Mongo collections backing MongodbRepo.
const (
	BookingsCollection = "bookings"
	CountersCollection = "counters"
)

// Booking links an event identifier to the identity that reserved it.
// Rows are only ever inserted.
type Booking struct {
	ID        int64     `db:"id" bson:"_id" json:"id"`
	EventID   string    `db:"event_id" bson:"event_id" json:"eventId" validate:"required"`
	UserEmail string    `db:"user_email" bson:"user_email" json:"userEmail" validate:"required"`
	CreatedAt time.Time `db:"booking_time" bson:"booking_time" json:"createdAt"`
}

// BookingNotification is the message body placed on the notification queue.
type BookingNotification struct {
	BookingID int64  `json:"bookingId"`
	EventID   string `json:"eventId"`
	UserEmail string `json:"userEmail"`
}

func (b *Booking) Notification() BookingNotification {
	return BookingNotification{
		BookingID: b.ID,
		EventID:   b.EventID,
		UserEmail: b.UserEmail,
	}
}

type BookingRepo interface {
	// EnsureSchema creates the backing table/collection if it is missing.
	EnsureSchema(ctx context.Context) error
	// CreateBooking inserts b and fills in its generated ID and CreatedAt.
	CreateBooking(ctx context.Context, b *Booking) error
	ListBookingsByUser(ctx context.Context, userEmail string) ([]*Booking, error)
}
