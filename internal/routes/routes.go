// Package routes registers the HTTP surface on a gorilla/mux router.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"iot-data-collector/internal/controller"
)

// SetupRouter registers all application routes.
func SetupRouter(c *controller.ReadingController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", c.Home).Methods(http.MethodGet)
	router.HandleFunc("/api/health", c.Health).Methods(http.MethodGet)

	// Device ingest surface
	router.HandleFunc("/api/data", c.IngestData).Methods(http.MethodPost)
	router.HandleFunc("/api/data/{device_id}", c.GetDeviceData).Methods(http.MethodGet)

	// CRUD surface
	router.HandleFunc("/api/crud/reading", c.CreateReading).Methods(http.MethodPost)
	router.HandleFunc("/api/crud/reading/{id:[0-9]+}", c.GetReading).Methods(http.MethodGet)
	router.HandleFunc("/api/crud/reading/{id:[0-9]+}", c.UpdateReading).Methods(http.MethodPut)
	router.HandleFunc("/api/crud/reading/{id:[0-9]+}", c.DeleteReading).Methods(http.MethodDelete)
	router.HandleFunc("/api/crud/readings", c.ListReadings).Methods(http.MethodGet)
	router.HandleFunc("/api/crud/device/{device_id}/readings", c.ListDeviceReadings).Methods(http.MethodGet)
	router.HandleFunc("/api/crud/device/{device_id}", c.DeleteDeviceReadings).Methods(http.MethodDelete)

	return router
}
