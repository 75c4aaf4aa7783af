package hotelapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type envelope[T any] struct {
	Results  []T             `json:"results"`
	Count    *int            `json:"count"`
	Next     json.RawMessage `json:"next"`
	Previous json.RawMessage `json:"previous"`
}

// DecodeCollection normalizes a collection response. The API answers either
// with a bare JSON array or with a paginated envelope carrying the records in
// "results"; both shapes produce the same slice. A null body or an envelope
// without results yields an empty slice.
func DecodeCollection[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if env.Results == nil {
			return []T{}, nil
		}
		return env.Results, nil
	default:
		return nil, fmt.Errorf("%w: expected array or object, got %q", ErrMalformedResponse, trimmed[0])
	}
}
