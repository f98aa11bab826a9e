package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for booking requests.
const (
	OutcomeCreated         = "created"
	OutcomeInvalid         = "invalid"
	OutcomeNoSeats         = "no_seats"
	OutcomeEventNotFound   = "event_not_found"
	OutcomeInventoryError  = "inventory_error"
	OutcomePaymentDeclined = "payment_declined"
	OutcomeStoreError      = "store_error"
	OutcomePublishError    = "publish_error"
)

var (
	once sync.Once

	bookingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking_service",
			Name:      "booking_requests_total",
			Help:      "Count of booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	inventoryLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "booking_service",
			Name:      "inventory_request_seconds",
			Help:      "Latency of seat availability lookups.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingRequests, inventoryLatency)
	})
}

func IncBookingRequest(outcome string) {
	bookingRequests.WithLabelValues(outcome).Inc()
}

func ObserveInventoryLatency(seconds float64) {
	inventoryLatency.Observe(seconds)
}

// BookingRequests returns the counter for outcome, mainly for tests.
func BookingRequests(outcome string) prometheus.Counter {
	return bookingRequests.WithLabelValues(outcome)
}
