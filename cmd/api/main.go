package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/booking-service/internal/config"
	"github.com/joshua-takyi/booking-service/internal/connect"
	"github.com/joshua-takyi/booking-service/internal/container"
	"github.com/joshua-takyi/booking-service/internal/helpers"
	"github.com/joshua-takyi/booking-service/internal/inventory"
	"github.com/joshua-takyi/booking-service/internal/metrics"
	"github.com/joshua-takyi/booking-service/internal/models"
	"github.com/joshua-takyi/booking-service/internal/notify"
	"github.com/joshua-takyi/booking-service/internal/obs"
	"github.com/joshua-takyi/booking-service/internal/payment"
	"github.com/joshua-takyi/booking-service/internal/routes"
)

// @title Booking Service API
// @version 1.0.0
// @description Creates event bookings and announces them on the notification queue.
// @BasePath /
// @securityDefinitions.apikey cookieAuth
// @in cookie
// @name token
func main() {
	// Load environment variables
	_ = godotenv.Load(".env")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting booking service", "environment", cfg.Environment, "store", cfg.BookingStore)

	shutdownTracer, err := obs.InitTracer(context.Background(), cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logger.Error("Failed to initialise tracing", "error", err)
		os.Exit(1)
	}
	metrics.Register()

	bookingRepo, closeStore, err := openBookingStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to open booking store", "error", err)
		os.Exit(1)
	}

	// The service keeps running without its table; inserts fail until it exists.
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 15*time.Second)
	if err := bookingRepo.EnsureSchema(schemaCtx); err != nil {
		logger.Error("Failed to create bookings schema", "error", err)
	} else {
		logger.Info("Bookings schema ready")
	}
	cancelSchema()

	verifier, err := newTokenVerifier(cfg)
	if err != nil {
		logger.Error("Failed to load token keys", "error", err)
		os.Exit(1)
	}

	publisher := notify.NewRabbitPublisher(cfg.RabbitMQURL, cfg.QueueName)
	logger.Info("Booking notifications go to RabbitMQ", "queue", publisher.Queue())

	appContainer := container.NewContainer(
		logger,
		cfg,
		bookingRepo,
		verifier,
		inventory.NewClient(cfg.EventServiceURL, cfg.EventServiceTimeout),
		payment.NewStub(),
		publisher,
	)

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := closeStore(); err != nil {
		logger.Error("Error closing booking store", "error", err)
	}
	verifier.Close()
	if err := shutdownTracer(ctx); err != nil {
		logger.Error("Error flushing traces", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func openBookingStore(cfg *config.Config, logger *slog.Logger) (models.BookingRepo, func() error, error) {
	switch cfg.BookingStore {
	case config.StoreMongo:
		client, err := connect.MongoDBConnect(cfg.MongoDBURI)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to MongoDB", "database", cfg.MongoDBName)
		return models.MongodbNewRepo(client, cfg.MongoDBName), func() error {
			return connect.MongoDBDisconnect(client)
		}, nil
	case config.StoreMemory:
		logger.Warn("Using in-memory booking store; bookings are lost on restart")
		return models.NewMemoryRepo(), func() error { return nil }, nil
	default:
		db, err := connect.PostgresOpen(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return models.PostgresNewRepo(db), func() error {
			return connect.PostgresClose(db)
		}, nil
	}
}

func newTokenVerifier(cfg *config.Config) (*helpers.TokenVerifier, error) {
	if cfg.JWKSURL == "" {
		return helpers.NewTokenVerifier(cfg.JWTSecret), nil
	}
	// The context outlives startup: it bounds the background key refresh,
	// which Close ends.
	return helpers.NewTokenVerifierWithJWKS(context.Background(), cfg.JWTSecret, cfg.JWKSURL)
}
