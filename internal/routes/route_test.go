package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/booking-service/internal/config"
	"github.com/joshua-takyi/booking-service/internal/container"
	"github.com/joshua-takyi/booking-service/internal/helpers"
	"github.com/joshua-takyi/booking-service/internal/inventory"
	"github.com/joshua-takyi/booking-service/internal/models"
	"github.com/joshua-takyi/booking-service/internal/payment"
	"github.com/joshua-takyi/booking-service/internal/services"
)

const testSecret = "route-secret"

type stubSeats struct {
	mu    sync.Mutex
	seats map[string]int
	err   error
	calls int
}

func (s *stubSeats) RemainingSeats(_ context.Context, eventID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	n, ok := s.seats[eventID]
	if !ok {
		return 0, inventory.ErrEventNotFound
	}
	return n, nil
}

type declinePayment struct{}

func (declinePayment) Approve(context.Context, string, string) (bool, error) {
	return false, nil
}

type stubPublisher struct {
	mu   sync.Mutex
	sent []models.BookingNotification
	err  error
}

func (p *stubPublisher) PublishBooking(_ context.Context, n models.BookingNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}

type testServer struct {
	router *gin.Engine
	repo   *models.MemoryRepo
	seats  *stubSeats
	pub    *stubPublisher
}

func newTestServer(t *testing.T, payments services.PaymentApprover) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		repo:  models.NewMemoryRepo(),
		seats: &stubSeats{seats: map[string]int{"E42": 5, "E0": 0}},
		pub:   &stubPublisher{},
	}
	if payments == nil {
		payments = payment.NewStub()
	}
	cfg := &config.Config{
		TokenCookie:    "token",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := container.NewContainer(logger, cfg, ts.repo, helpers.NewTokenVerifier(testSecret), ts.seats, payments, ts.pub)
	ts.router = SetupRoutes(c)
	return ts
}

func sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return &http.Cookie{Name: "token", Value: tok}
}

func (ts *testServer) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

func TestCreateBookingCreated(t *testing.T) {
	ts := newTestServer(t, nil)

	rr := ts.do(http.MethodPost, "/bookings", `{"eventId":"E42"}`, sessionCookie(t, "user@example.com"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var resp struct {
		Message   string `json:"message"`
		BookingID int64  `json:"bookingId"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Booking created successfully" || resp.BookingID <= 0 {
		t.Errorf("unexpected response %+v", resp)
	}

	rows := ts.repo.All()
	if len(rows) != 1 || rows[0].ID != resp.BookingID || rows[0].UserEmail != "user@example.com" {
		t.Fatalf("expected one stored booking matching the response, got %+v", rows)
	}
	if len(ts.pub.sent) != 1 || ts.pub.sent[0].BookingID != resp.BookingID {
		t.Errorf("expected one notification for booking %d, got %+v", resp.BookingID, ts.pub.sent)
	}
}

func TestCreateBookingErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		cookie      bool
		payments    services.PaymentApprover
		wantStatus  int
		wantError   string
		wantLookups int
	}{
		{"missing event id", `{}`, true, nil, http.StatusBadRequest, "Missing required field: eventId", 0},
		{"empty event id", `{"eventId":""}`, true, nil, http.StatusBadRequest, "Missing required field: eventId", 0},
		{"non-string event id", `{"eventId":5}`, true, nil, http.StatusBadRequest, "Missing required field: eventId", 0},
		{"malformed body", `{"eventId":`, true, nil, http.StatusBadRequest, "Missing required field: eventId", 0},
		{"no cookie", `{"eventId":"E42"}`, false, nil, http.StatusUnauthorized, "No token provided", 0},
		{"sold out", `{"eventId":"E0"}`, true, nil, http.StatusBadRequest, "No seats available", 1},
		{"unknown event", `{"eventId":"missing-id"}`, true, nil, http.StatusNotFound, "Event not found", 1},
		{"payment declined", `{"eventId":"E42"}`, true, declinePayment{}, http.StatusPaymentRequired, "Payment failed", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.payments)
			var cookie *http.Cookie
			if tt.cookie {
				cookie = sessionCookie(t, "user@example.com")
			}

			rr := ts.do(http.MethodPost, "/bookings", tt.body, cookie)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d body=%s", tt.wantStatus, rr.Code, rr.Body.String())
			}

			var body models.ErrorBody
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, body.Error)
			}
			if ts.seats.calls != tt.wantLookups {
				t.Errorf("expected %d inventory lookups, got %d", tt.wantLookups, ts.seats.calls)
			}
			if rows := ts.repo.All(); len(rows) != 0 {
				t.Errorf("expected no rows, got %+v", rows)
			}
		})
	}
}

func TestCreateBookingInventoryUnavailable(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.seats.err = errors.New("dial tcp: connection refused")

	rr := ts.do(http.MethodPost, "/bookings", `{"eventId":"E42"}`, sessionCookie(t, "user@example.com"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d body=%s", http.StatusInternalServerError, rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Failed to check seat availability") {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}

func TestCreateBookingPublishFailureLeavesRow(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.pub.err = errors.New("broker unreachable")

	rr := ts.do(http.MethodPost, "/bookings", `{"eventId":"E42"}`, sessionCookie(t, "user@example.com"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d body=%s", http.StatusInternalServerError, rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "bookingId") {
		t.Errorf("expected no booking id in the failure body, got %s", rr.Body.String())
	}
	if rows := ts.repo.All(); len(rows) != 1 {
		t.Errorf("expected the stored row to remain, got %+v", rows)
	}
}

func TestListBookingsReturnsOnlyCallerRows(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := sessionCookie(t, "alice@example.com")
	bob := sessionCookie(t, "bob@example.com")

	for _, c := range []*http.Cookie{alice, bob, alice} {
		if rr := ts.do(http.MethodPost, "/bookings", `{"eventId":"E42"}`, c); rr.Code != http.StatusCreated {
			t.Fatalf("setup booking failed: %d body=%s", rr.Code, rr.Body.String())
		}
	}

	rr := ts.do(http.MethodGet, "/bookings", "", alice)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var resp models.BookingListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(resp.Bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(resp.Bookings))
	}
	for _, b := range resp.Bookings {
		if b.UserEmail != "alice@example.com" {
			t.Errorf("unexpected booking for %s", b.UserEmail)
		}
	}

	if rr := ts.do(http.MethodGet, "/bookings", "", nil); rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a cookie, got %d", rr.Code)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		path     string
		contains string
	}{
		{"/health", `"status":"OK"`},
		{"/swagger/doc.json", `"/bookings"`},
		{"/metrics", "# HELP"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := ts.do(http.MethodGet, tt.path, "", nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected %d, got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.contains) {
				t.Errorf("expected body to contain %q", tt.contains)
			}
		})
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials to be allowed, got %q", got)
	}
}
