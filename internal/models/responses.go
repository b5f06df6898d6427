package models

// HomeResponse is the landing endpoint body.
type HomeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HealthResponse reports store reachability.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// IngestResponse acknowledges a device data submission.
type IngestResponse struct {
	Message   string `json:"message"`
	DeviceID  string `json:"device_id"`
	Timestamp string `json:"timestamp"`
}

// DeviceDataResponse is the legacy per-device query body: the latest
// readings for one device, newest first.
type DeviceDataResponse struct {
	DeviceID string     `json:"device_id"`
	Readings []*Reading `json:"readings"`
	Count    int        `json:"count"`
}

// CreateReadingResponse acknowledges a created reading.
type CreateReadingResponse struct {
	Success   bool   `json:"success"`
	ReadingID int64  `json:"reading_id"`
	Message   string `json:"message"`
}

// ReadingResponse wraps a single reading.
type ReadingResponse struct {
	Success bool     `json:"success"`
	Reading *Reading `json:"reading"`
}

// ReadingListResponse is one page of readings plus the full population
// count, independent of the pagination window.
type ReadingListResponse struct {
	Success  bool       `json:"success"`
	DeviceID string     `json:"device_id,omitempty"`
	Readings []*Reading `json:"readings"`
	Total    int        `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// MutationResponse acknowledges an update or delete.
type MutationResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RowsAffected int64  `json:"rows_affected"`
}
