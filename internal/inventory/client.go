package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrEventNotFound = errors.New("event not found")

// Client reads remaining seats from the event service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RemainingSeats calls GET /api/events/{id}/seats. The event service answers
// with a bare JSON number; an event object carrying "seats" is accepted too.
func (c *Client) RemainingSeats(ctx context.Context, eventID string) (int, error) {
	endpoint := fmt.Sprintf("%s/api/events/%s/seats", c.baseURL, url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build seats request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("seats request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrEventNotFound
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("failed to read seats response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("event service returned status %d", resp.StatusCode)
	}
	return decodeSeats(body)
}

func decodeSeats(body []byte) (int, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var ev struct {
			Seats *json.Number `json:"seats"`
		}
		if err := json.Unmarshal(body, &ev); err != nil {
			return 0, fmt.Errorf("invalid seats response: %w", err)
		}
		if ev.Seats == nil {
			return 0, errors.New("invalid seats response: missing seats")
		}
		return numberToSeats(*ev.Seats)
	}

	var n json.Number
	if err := json.Unmarshal(body, &n); err != nil {
		return 0, fmt.Errorf("invalid seats response: %w", err)
	}
	return numberToSeats(n)
}

// numberToSeats only has to preserve the "any seats left" decision: fractional
// counts round up and counts beyond int range clamp to math.MaxInt.
func numberToSeats(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil && !math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid seats value %q: %w", n.String(), err)
	}
	switch {
	case f <= 0:
		return 0, nil
	case f >= float64(math.MaxInt):
		return math.MaxInt, nil
	default:
		return int(math.Ceil(f)), nil
	}
}
