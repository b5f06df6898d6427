// Package storage defines the persistence contract for sensor readings.
package storage

import (
	"context"
	"errors"

	"iot-data-collector/internal/models"
)

// DefaultLimit is the page size used when a caller does not supply one.
const DefaultLimit = 100

// ReadingPage is one pagination window over the readings table. Total
// counts the full matching population, not the window.
type ReadingPage struct {
	Readings []*models.Reading
	Total    int
	Limit    int
	Offset   int
}

// Store is the interface for persistent reading storage.
type Store interface {
	CreateReading(ctx context.Context, input models.ReadingInput) (int64, error)
	GetReading(ctx context.Context, id int64) (*models.Reading, error)
	ListReadings(ctx context.Context, limit, offset int) (*ReadingPage, error)
	ListDeviceReadings(ctx context.Context, deviceID string, limit, offset int) (*ReadingPage, error)
	UpdateReading(ctx context.Context, id int64, update models.ReadingUpdate) (int64, error)
	DeleteReading(ctx context.Context, id int64) (int64, error)
	DeleteDeviceReadings(ctx context.Context, deviceID string) (int64, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
