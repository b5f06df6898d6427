package service

import (
	"context"
	"encoding/json"
	"errors"

	"iot-data-collector/internal/models"
	"iot-data-collector/internal/storage"
)

// ValidationError reports bad or missing caller input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ReadingService handles the business logic for sensor readings.
type ReadingService struct {
	store storage.Store
}

// NewReadingService creates a new ReadingService.
func NewReadingService(store storage.Store) *ReadingService {
	return &ReadingService{
		store: store,
	}
}

// CreateReading validates the input and stores a new reading.
func (s *ReadingService) CreateReading(ctx context.Context, input models.ReadingInput) (int64, error) {
	if input.DeviceID == "" {
		return 0, ValidationError{Message: "device_id is required"}
	}
	if err := validateSensorData(input.SensorData); err != nil {
		return 0, err
	}
	return s.store.CreateReading(ctx, input)
}

// GetReading returns one reading by id.
func (s *ReadingService) GetReading(ctx context.Context, id int64) (*models.Reading, error) {
	return s.store.GetReading(ctx, id)
}

// ListReadings returns one page over all readings, newest first.
func (s *ReadingService) ListReadings(ctx context.Context, limit, offset int) (*storage.ReadingPage, error) {
	return s.store.ListReadings(ctx, limit, offset)
}

// ListDeviceReadings returns one page over a single device's readings.
// An empty page is not an error.
func (s *ReadingService) ListDeviceReadings(ctx context.Context, deviceID string, limit, offset int) (*storage.ReadingPage, error) {
	if deviceID == "" {
		return nil, ValidationError{Message: "device_id is required"}
	}
	return s.store.ListDeviceReadings(ctx, deviceID, limit, offset)
}

// UpdateReading applies a partial update. Only supplied fields change; a
// field supplied with its zero value is still written.
func (s *ReadingService) UpdateReading(ctx context.Context, id int64, update models.ReadingUpdate) (int64, error) {
	if update.Empty() {
		return 0, ValidationError{Message: "nothing to update"}
	}
	if update.DeviceID != nil && *update.DeviceID == "" {
		return 0, ValidationError{Message: "device_id cannot be empty"}
	}
	if err := validateSensorData(update.SensorData); err != nil {
		return 0, err
	}
	return s.store.UpdateReading(ctx, id, update)
}

// DeleteReading removes one reading by id.
func (s *ReadingService) DeleteReading(ctx context.Context, id int64) (int64, error) {
	return s.store.DeleteReading(ctx, id)
}

// DeleteDeviceReadings removes every reading for one device.
func (s *ReadingService) DeleteDeviceReadings(ctx context.Context, deviceID string) (int64, error) {
	if deviceID == "" {
		return 0, ValidationError{Message: "device_id is required"}
	}
	return s.store.DeleteDeviceReadings(ctx, deviceID)
}

// HealthCheck reports whether the store is reachable.
func (s *ReadingService) HealthCheck(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func validateSensorData(data json.RawMessage) error {
	if data != nil && !json.Valid(data) {
		return ValidationError{Message: "sensor_data must be valid JSON"}
	}
	return nil
}
