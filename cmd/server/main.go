package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/cors"

	"iot-data-collector/internal/config"
	"iot-data-collector/internal/controller"
	"iot-data-collector/internal/routes"
	"iot-data-collector/internal/service"
	"iot-data-collector/internal/storage/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Bootstrap the store; schema creation failure is fatal and the
	// server must not start listening.
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Error creating database directory: %v", err)
		}
	}
	store, err := sqlite.NewFileStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer store.Close()

	// Initialize service, controller, and routes
	readingService := service.NewReadingService(store)
	readingController := controller.NewReadingController(readingService)
	router := routes.SetupRouter(readingController)

	// CORS setup
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := c.Handler(router)

	serverAddress := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server is running on %s", serverAddress)
	if err := http.ListenAndServe(serverAddress, handler); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
