package models

import (
	"encoding/json"
	"time"
)

// Reading represents one stored sensor observation.
type Reading struct {
	ID          int64           `json:"id"`
	DeviceID    string          `json:"device_id"`
	Timestamp   time.Time       `json:"timestamp"`
	SensorData  json.RawMessage `json:"sensor_data"`
	Temperature *float64        `json:"temperature"`
	Humidity    *float64        `json:"humidity"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReadingInput is the payload accepted by the ingest and create endpoints.
// Temperature and humidity are pointers so that an absent measurement is
// stored as NULL rather than zero.
type ReadingInput struct {
	DeviceID    string          `json:"device_id"`
	Temperature *float64        `json:"temperature"`
	Humidity    *float64        `json:"humidity"`
	SensorData  json.RawMessage `json:"sensor_data"`
}

// ReadingUpdate carries the fields of a partial update. A nil field means
// "leave unchanged"; a non-nil field is written even when it holds the
// zero value.
type ReadingUpdate struct {
	DeviceID    *string         `json:"device_id"`
	Temperature *float64        `json:"temperature"`
	Humidity    *float64        `json:"humidity"`
	SensorData  json.RawMessage `json:"sensor_data"`
}

// Empty reports whether the update carries no fields at all.
func (u ReadingUpdate) Empty() bool {
	return u.DeviceID == nil && u.Temperature == nil && u.Humidity == nil && u.SensorData == nil
}
