package models

import (
	"context"
	"fmt"
)

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	event_id VARCHAR(255) NOT NULL,
	user_email VARCHAR(255) NOT NULL,
	booking_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

const createBookingsUserIndex = `CREATE INDEX IF NOT EXISTS idx_bookings_user_email ON bookings (user_email)`

func (pg *PostgresRepo) EnsureSchema(ctx context.Context) error {
	if _, err := pg.db.ExecContext(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("error creating bookings table: %w", err)
	}
	if _, err := pg.db.ExecContext(ctx, createBookingsUserIndex); err != nil {
		return fmt.Errorf("error creating bookings index: %w", err)
	}
	return nil
}

func (pg *PostgresRepo) CreateBooking(ctx context.Context, b *Booking) error {
	if err := Validate.Struct(b); err != nil {
		return fmt.Errorf("invalid booking: %w", err)
	}

	query := `INSERT INTO bookings (event_id, user_email) VALUES ($1, $2) RETURNING id, booking_time`
	err := pg.db.QueryRowxContext(ctx, query, b.EventID, b.UserEmail).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (pg *PostgresRepo) ListBookingsByUser(ctx context.Context, userEmail string) ([]*Booking, error) {
	var bookings []*Booking
	query := `SELECT id, event_id, user_email, booking_time FROM bookings WHERE user_email = $1 ORDER BY id ASC`
	if err := pg.db.SelectContext(ctx, &bookings, query, userEmail); err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return bookings, nil
}
