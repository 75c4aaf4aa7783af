// Package hotelapi is a typed client for the hotel platform REST API.
//
// Endpoints used by the console:
//   - GET    /event-bookings/[?guest={id}]
//   - POST   /event-bookings/
//   - PATCH  /event-bookings/{id}/   body {"status": ...}
//   - DELETE /event-bookings/{id}/
//   - GET    /guests/?email={email}
//   - GET    /blogs/                 (unauthenticated)
//   - POST   /login/
//
// Authenticated calls carry an "Authorization: Token <value>" header. The
// client never retries and sets no deadline of its own; callers bound
// requests through their context.
package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/hotel-console/internal/logging"
)

// DefaultBaseURL is the API origin used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

const maxErrorBody = 4 << 10

// Client issues requests against a fixed API base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates baseURL and returns a client using httpClient, or
// http.DefaultClient when nil.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("hotelapi: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("hotelapi: base URL must be http or https, got %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: parsed, httpClient: httpClient, logger: logger}, nil
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListEventBookings fetches event bookings, optionally filtered by guest.
func (c *Client) ListEventBookings(ctx context.Context, token string, query EventBookingQuery) ([]EventBooking, error) {
	params := url.Values{}
	if query.GuestID != 0 {
		params.Set("guest", strconv.FormatInt(query.GuestID, 10))
	}

	body, err := c.do(ctx, http.MethodGet, "/event-bookings/", params, token, nil)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[EventBooking](body)
}

// CreateEventBooking submits a new event request.
func (c *Client) CreateEventBooking(ctx context.Context, token string, booking NewEventBooking) (EventBooking, error) {
	body, err := c.do(ctx, http.MethodPost, "/event-bookings/", nil, token, booking)
	if err != nil {
		return EventBooking{}, err
	}
	var created EventBooking
	if len(bytes.TrimSpace(body)) == 0 {
		return created, nil
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return EventBooking{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return created, nil
}

// UpdateEventBookingStatus patches the status field of one booking. The
// response body is not consumed.
func (c *Client) UpdateEventBookingStatus(ctx context.Context, token string, id int64, status string) error {
	_, err := c.do(ctx, http.MethodPatch, bookingPath(id), nil, token, statusPatch{Status: status})
	return err
}

// DeleteEventBooking removes one booking.
func (c *Client) DeleteEventBooking(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, bookingPath(id), nil, token, nil)
	return err
}

// FindGuestsByEmail returns the guests registered under email in response order.
func (c *Client) FindGuestsByEmail(ctx context.Context, token, email string) ([]Guest, error) {
	params := url.Values{}
	params.Set("email", email)

	body, err := c.do(ctx, http.MethodGet, "/guests/", params, token, nil)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[Guest](body)
}

// ListBlogs fetches every blog entry without authentication, including
// unpublished ones.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	body, err := c.do(ctx, http.MethodGet, "/blogs/", nil, "", nil)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[Blog](body)
}

// Login exchanges credentials for a token and the user snapshot.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/login/", nil, "", credentials{Username: username, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Token == "" {
		result.Token = result.Access
	}
	return result, nil
}

func bookingPath(id int64) string {
	return "/event-bookings/" + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, token string, payload any) ([]byte, error) {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("hotelapi: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("hotelapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	logger := logging.Scoped(ctx, c.logger, "client", "hotelapi", "", "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WarnContext(ctx, "api request failed", "error", err, "duration", time.Since(start))
		return nil, fmt.Errorf("hotelapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hotelapi: read %s %s: %w", method, path, err)
	}

	logger.DebugContext(ctx, "api request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body),
		}
	}
	return body, nil
}

func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return strings.TrimSpace(string(body))
}

// IsTransportError reports whether err came from a request that never
// produced an HTTP response.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr) && !errors.Is(err, ErrMalformedResponse)
}
