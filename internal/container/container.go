package container

import (
	"log/slog"

	"github.com/joshua-takyi/booking-service/internal/config"
	"github.com/joshua-takyi/booking-service/internal/helpers"
	"github.com/joshua-takyi/booking-service/internal/models"
	"github.com/joshua-takyi/booking-service/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	BookingRepo    models.BookingRepo
	TokenVerifier  *helpers.TokenVerifier
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	bookingRepo models.BookingRepo,
	verifier *helpers.TokenVerifier,
	seats services.SeatChecker,
	payments services.PaymentApprover,
	publisher services.NotificationPublisher,
) *Container {
	bookingService := services.NewBookingService(bookingRepo, seats, payments, publisher, logger)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		BookingRepo:    bookingRepo,
		TokenVerifier:  verifier,
		BookingService: bookingService,
	}
}
