package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"iot-data-collector/internal/models"
	"iot-data-collector/internal/service"
	"iot-data-collector/internal/storage"
	"iot-data-collector/internal/utils"
)

// ReadingController handles HTTP requests for sensor readings.
type ReadingController struct {
	service *service.ReadingService
}

// NewReadingController creates a new ReadingController.
func NewReadingController(service *service.ReadingService) *ReadingController {
	return &ReadingController{
		service: service,
	}
}

// Home serves the landing endpoint.
func (c *ReadingController) Home(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, models.HomeResponse{
		Message: "IoT Data Collection API",
		Status:  "running",
		Version: "1.0.0",
	})
}

// Health probes store reachability.
func (c *ReadingController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.service.HealthCheck(r.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		utils.RespondWithJSON(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// IngestData handles incoming device data submissions.
func (c *ReadingController) IngestData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		apiErr := models.NewAPIError(models.ErrorCodeBadRequest, "No data received", http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}
	defer r.Body.Close()

	var input models.ReadingInput
	if err := json.Unmarshal(body, &input); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, "Invalid JSON payload", http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}

	if _, err := c.service.CreateReading(r.Context(), input); err != nil {
		c.respondServiceError(w, err, "ingest data")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, models.IngestResponse{
		Message:   "Data received successfully",
		DeviceID:  input.DeviceID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// GetDeviceData returns the latest readings for a specific device.
func (c *ReadingController) GetDeviceData(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	page, err := c.service.ListDeviceReadings(r.Context(), deviceID, storage.DefaultLimit, 0)
	if err != nil {
		c.respondServiceError(w, err, "get device data")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.DeviceDataResponse{
		DeviceID: deviceID,
		Readings: page.Readings,
		Count:    len(page.Readings),
	})
}

// CreateReading creates a reading via the CRUD surface.
func (c *ReadingController) CreateReading(w http.ResponseWriter, r *http.Request) {
	var input models.ReadingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, "Invalid request payload", http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}
	defer r.Body.Close()

	id, err := c.service.CreateReading(r.Context(), input)
	if err != nil {
		c.respondServiceError(w, err, "create reading")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, models.CreateReadingResponse{
		Success:   true,
		ReadingID: id,
		Message:   "Reading created successfully",
	})
}

// GetReading returns one reading by id.
func (c *ReadingController) GetReading(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	reading, err := c.service.GetReading(r.Context(), id)
	if err != nil {
		c.respondServiceError(w, err, "get reading")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.ReadingResponse{
		Success: true,
		Reading: reading,
	})
}

// ListReadings returns one page over all readings.
func (c *ReadingController) ListReadings(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := c.window(w, r)
	if !ok {
		return
	}

	page, err := c.service.ListReadings(r.Context(), limit, offset)
	if err != nil {
		c.respondServiceError(w, err, "list readings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.ReadingListResponse{
		Success:  true,
		Readings: page.Readings,
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// ListDeviceReadings returns one page over a single device's readings.
func (c *ReadingController) ListDeviceReadings(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]
	limit, offset, ok := c.window(w, r)
	if !ok {
		return
	}

	page, err := c.service.ListDeviceReadings(r.Context(), deviceID, limit, offset)
	if err != nil {
		c.respondServiceError(w, err, "list device readings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.ReadingListResponse{
		Success:  true,
		DeviceID: deviceID,
		Readings: page.Readings,
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// UpdateReading applies a partial update to one reading.
func (c *ReadingController) UpdateReading(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	var update models.ReadingUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, "Invalid request payload", http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}
	defer r.Body.Close()

	affected, err := c.service.UpdateReading(r.Context(), id, update)
	if err != nil {
		c.respondServiceError(w, err, "update reading")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MutationResponse{
		Success:      true,
		Message:      "Reading updated successfully",
		RowsAffected: affected,
	})
}

// DeleteReading removes one reading by id.
func (c *ReadingController) DeleteReading(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}

	affected, err := c.service.DeleteReading(r.Context(), id)
	if err != nil {
		c.respondServiceError(w, err, "delete reading")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MutationResponse{
		Success:      true,
		Message:      "Reading deleted successfully",
		RowsAffected: affected,
	})
}

// DeleteDeviceReadings removes every reading for one device.
func (c *ReadingController) DeleteDeviceReadings(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	affected, err := c.service.DeleteDeviceReadings(r.Context(), deviceID)
	if err != nil {
		c.respondServiceError(w, err, "delete device readings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MutationResponse{
		Success:      true,
		Message:      "Readings deleted successfully for device " + deviceID,
		RowsAffected: affected,
	})
}

// pathID extracts the {id} route variable.
func (c *ReadingController) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, "id must be an integer", http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return 0, false
	}
	return id, true
}

// window parses the limit/offset query parameters with their defaults.
func (c *ReadingController) window(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	limit := storage.DefaultLimit
	offset := 0

	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, "limit must be an integer", http.StatusBadRequest)
			utils.RespondWithError(w, apiErr)
			return 0, 0, false
		}
		limit = parsed
	}
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, "offset must be an integer", http.StatusBadRequest)
			utils.RespondWithError(w, apiErr)
			return 0, 0, false
		}
		offset = parsed
	}
	return limit, offset, true
}

// respondServiceError maps a service failure to the wire taxonomy. Raw
// storage error text is logged, never returned to the caller.
func (c *ReadingController) respondServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apiErr := models.NewAPIError(models.ErrorCodeValidationFailed, validationErr.Message, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
	case storage.IsNotFound(err):
		apiErr := models.NewAPIError(models.ErrorCodeResourceNotFound, err.Error(), http.StatusNotFound)
		utils.RespondWithError(w, apiErr)
	default:
		log.Printf("Error during %s: %v", operation, err)
		apiErr := models.NewAPIError(models.ErrorCodeInternalServerError, "Database error", http.StatusInternalServerError)
		utils.RespondWithError(w, apiErr)
	}
}
