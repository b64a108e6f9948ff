package storage

import "errors"

var (
	// ErrNotFound is returned by Get for a key that was never set.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable is returned when there is no on-device storage.
	ErrUnavailable = errors.New("storage: unavailable")
)

// KeyValue is the on-device persistence layer: plain string keys mapped to
// JSON-serialized values.
type KeyValue interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// RecordWriter is the interface for exporting rendered listing rows.
type RecordWriter interface {
	Write(rows [][]string) error
	Close() error
}

// Unavailable is a KeyValue for contexts without storage. Every call
// returns ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Get(string) ([]byte, error) { return nil, ErrUnavailable }
func (Unavailable) Set(string, []byte) error   { return ErrUnavailable }
func (Unavailable) Delete(string) error        { return ErrUnavailable }
