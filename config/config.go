package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the application.
type Config struct {
	ServerPort     int
	StoreBackend   string
	DatabaseURL    string
	StoreFile      string
	AllowedOrigins []string
}

const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

// Load reads configuration from environment variables. A local .env file
// is loaded first if present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = BackendPostgres
	}
	if backend != BackendPostgres && backend != BackendFile {
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendPostgres, BackendFile, backend)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if backend == BackendPostgres && dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	storeFile := os.Getenv("STORE_FILE")
	if storeFile == "" {
		storeFile = "db.json"
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	cfg := &Config{
		ServerPort:     port,
		StoreBackend:   backend,
		DatabaseURL:    dbURL,
		StoreFile:      storeFile,
		AllowedOrigins: origins,
	}

	return cfg, nil
}
