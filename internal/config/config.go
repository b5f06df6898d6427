package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	Port           string
	DBPath         string
	AllowedOrigins []string
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (Config, error) {
	// load env variables
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		Port:           getEnv("SERVER_PORT", "5001"),
		DBPath:         getEnv("DB_PATH", "data/iot_data.db"),
		AllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
