package hotelapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when a response body is not the JSON the
// endpoint is expected to produce.
var ErrMalformedResponse = errors.New("hotelapi: malformed response")

// APIError describes a non-2xx response from the hotel API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("hotelapi: %s %s returned %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// UserDetail returns the reason the API gave for refusing the request.
func (e *APIError) UserDetail() string {
	if e == nil {
		return ""
	}
	return e.Detail
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a completed HTTP exchange.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
