// Package source fetches listing collections from the platform, either over
// its JSON API or by rendering its pages in a headless browser.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"exchange-catalog/models"
)

var (
	// ErrLoadFailed is the generic "could not load" condition shown to users.
	ErrLoadFailed = errors.New("failed to load")
	// ErrTimeout means the fetch exceeded its deadline. It is a load failure.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrLoadFailed)
	// ErrStale marks a response superseded by a newer request.
	ErrStale = errors.New("stale response discarded")
)

// Source fetches the raw JSON body for an endpoint.
type Source interface {
	Fetch(ctx context.Context, ep models.Endpoint) ([]byte, error)
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// Is makes every HTTPError match ErrLoadFailed.
func (e *HTTPError) Is(target error) bool {
	return target == ErrLoadFailed
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(statusCode int, url, message string) error {
	return &HTTPError{StatusCode: statusCode, URL: url, Message: message}
}

// DecodeCollection extracts the named array from a {"<collection>": [...]}
// envelope. A missing or null collection decodes to an empty slice; a
// malformed body is a load failure.
func DecodeCollection[T any](body []byte, collection string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrLoadFailed, err)
	}

	raw, ok := envelope[collection]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadFailed, collection, err)
	}
	return items, nil
}

// DecodeObject decodes a single-object response.
func DecodeObject[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("%w: decode: %v", ErrLoadFailed, err)
	}
	return v, nil
}

// FetchCollection fetches ep and decodes its collection.
func FetchCollection[T any](ctx context.Context, src Source, ep models.Endpoint) ([]T, error) {
	body, err := src.Fetch(ctx, ep)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[T](body, ep.Collection)
}

// FetchObject fetches ep and decodes it as a single object.
func FetchObject[T any](ctx context.Context, src Source, ep models.Endpoint) (T, error) {
	body, err := src.Fetch(ctx, ep)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeObject[T](body)
}
