package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/booking-service/internal/inventory"
	"github.com/joshua-takyi/booking-service/internal/metrics"
	"github.com/joshua-takyi/booking-service/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrMissingEventID  = errors.New("missing required field: eventId")
	ErrInvalidIdentity = errors.New("invalid or missing user email")
	ErrEventNotFound   = inventory.ErrEventNotFound
	ErrAvailability    = errors.New("failed to check seat availability")
	ErrNoSeats         = errors.New("no seats available")
	ErrPaymentDeclined = errors.New("payment failed")
	ErrPersistBooking  = errors.New("failed to save booking")
	ErrPublishBooking  = errors.New("failed to publish booking notification")
)

type SeatChecker interface {
	RemainingSeats(ctx context.Context, eventID string) (int, error)
}

type PaymentApprover interface {
	Approve(ctx context.Context, eventID, userEmail string) (bool, error)
}

type NotificationPublisher interface {
	PublishBooking(ctx context.Context, n models.BookingNotification) error
}

type BookingService struct {
	bookingRepo models.BookingRepo
	seats       SeatChecker
	payments    PaymentApprover
	publisher   NotificationPublisher
	logger      *slog.Logger
	tracer      trace.Tracer
}

func NewBookingService(
	bookingRepo models.BookingRepo,
	seats SeatChecker,
	payments PaymentApprover,
	publisher NotificationPublisher,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		seats:       seats,
		payments:    payments,
		publisher:   publisher,
		logger:      logger,
		tracer:      otel.Tracer("github.com/joshua-takyi/booking-service/internal/services"),
	}
}

// CreateBooking checks seats, takes payment, stores the booking and announces
// it on the notification queue, in that order. Seats are read, never reserved,
// so concurrent requests for the last seat can all succeed.
//
// A publish failure returns the stored booking together with an error
// wrapping ErrPublishBooking; the row is not rolled back.
func (bs *BookingService) CreateBooking(ctx context.Context, eventID, userEmail string) (*models.Booking, error) {
	ctx, span := bs.tracer.Start(ctx, "booking.create", trace.WithAttributes(attribute.String("event.id", eventID)))
	defer span.End()

	booking, outcome, err := bs.createBooking(ctx, eventID, userEmail)
	metrics.IncBookingRequest(outcome)
	span.SetAttributes(attribute.String("booking.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	return booking, err
}

func (bs *BookingService) createBooking(ctx context.Context, eventID, userEmail string) (*models.Booking, string, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, metrics.OutcomeInvalid, ErrMissingEventID
	}
	userEmail = strings.TrimSpace(userEmail)
	if userEmail == "" {
		return nil, metrics.OutcomeInvalid, ErrInvalidIdentity
	}

	if outcome, err := bs.checkSeats(ctx, eventID); err != nil {
		return nil, outcome, err
	}

	approved, err := bs.payments.Approve(ctx, eventID, userEmail)
	if err != nil {
		return nil, metrics.OutcomePaymentDeclined, fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
	}
	if !approved {
		return nil, metrics.OutcomePaymentDeclined, ErrPaymentDeclined
	}

	booking := &models.Booking{EventID: eventID, UserEmail: userEmail}
	if err := bs.insert(ctx, booking); err != nil {
		return nil, metrics.OutcomeStoreError, fmt.Errorf("%w: %w", ErrPersistBooking, err)
	}

	if err := bs.publish(ctx, booking); err != nil {
		bs.logger.Error("Booking stored but notification not sent",
			"booking_id", booking.ID,
			"event_id", booking.EventID,
			"error", err,
		)
		return booking, metrics.OutcomePublishError, fmt.Errorf("%w: %w", ErrPublishBooking, err)
	}

	bs.logger.Info("Booking created",
		"booking_id", booking.ID,
		"event_id", booking.EventID,
	)
	return booking, metrics.OutcomeCreated, nil
}

func (bs *BookingService) checkSeats(ctx context.Context, eventID string) (string, error) {
	ctx, span := bs.tracer.Start(ctx, "inventory.remaining_seats")
	defer span.End()

	start := time.Now()
	seats, err := bs.seats.RemainingSeats(ctx, eventID)
	metrics.ObserveInventoryLatency(time.Since(start).Seconds())

	switch {
	case errors.Is(err, ErrEventNotFound):
		return metrics.OutcomeEventNotFound, ErrEventNotFound
	case err != nil:
		span.RecordError(err)
		bs.logger.Error("Error checking seat availability", "event_id", eventID, "error", err)
		return metrics.OutcomeInventoryError, fmt.Errorf("%w: %w", ErrAvailability, err)
	}

	span.SetAttributes(attribute.Int("inventory.seats", seats))
	if seats <= 0 {
		return metrics.OutcomeNoSeats, ErrNoSeats
	}
	return "", nil
}

func (bs *BookingService) insert(ctx context.Context, b *models.Booking) error {
	ctx, span := bs.tracer.Start(ctx, "store.create_booking")
	defer span.End()

	if err := bs.bookingRepo.CreateBooking(ctx, b); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int64("booking.id", b.ID))
	return nil
}

func (bs *BookingService) publish(ctx context.Context, b *models.Booking) error {
	ctx, span := bs.tracer.Start(ctx, "notify.publish_booking")
	defer span.End()

	if err := bs.publisher.PublishBooking(ctx, b.Notification()); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (bs *BookingService) ListBookings(ctx context.Context, userEmail string) ([]*models.Booking, error) {
	userEmail = strings.TrimSpace(userEmail)
	if userEmail == "" {
		return nil, ErrInvalidIdentity
	}
	return bs.bookingRepo.ListBookingsByUser(ctx, userEmail)
}
