package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/elishacook/microfun/internal/errors"
)

// Record is one journaled model.
type Record struct {
	Seq   uint64          `json:"seq"`
	Time  time.Time       `json:"time"`
	Model json.RawMessage `json:"model"`
}

// Store persists records in sequence order.
type Store interface {
	// Append stores data as the next record and returns its sequence.
	Append(ctx context.Context, data []byte) (uint64, error)

	// Latest returns the record with the highest sequence, or
	// ErrNotFound when the store is empty.
	Latest(ctx context.Context) (Record, error)

	// Close releases the store.
	Close() error
}

var (
	// ErrNotFound is returned when there is no snapshot to read.
	ErrNotFound = errors.New("E130")

	// ErrStorage wraps failures of the underlying store.
	ErrStorage = errors.New("E131")
)

func storageError(op string, err error) error {
	return errors.New("E131").WithDetail("Operation: " + op + ".").Wrap(err)
}

// Restore decodes the latest record into a model.
func Restore[M any](ctx context.Context, store Store) (M, error) {
	var m M
	rec, err := store.Latest(ctx)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(rec.Model, &m); err != nil {
		return m, storageError("decode", err)
	}
	return m, nil
}
