// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables, with an optional
// .env file loaded first for local development.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// MongoURI is the MongoDB connection string. Required.
	MongoURI string

	// MongoDB is the database name. Defaults to "voyageur".
	MongoDB string

	// CloudinaryURL is the cloudinary:// credential URL for image uploads. Required.
	CloudinaryURL string

	// StripeSecretKey enables the payment endpoint when set. Optional:
	// deployments without payments simply leave it empty.
	StripeSecretKey string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (the React dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxUploadBytes caps the size of an incoming request body, which for the
	// creation endpoints bounds the total multipart payload. Defaults to 10 MiB.
	MaxUploadBytes int64
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is merged in first when present.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Ignore the error: production deployments set real env vars and have no .env.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		MongoDB:         getEnv("MONGODB_DB", "voyageur"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
	}

	var missing []string

	cfg.MongoURI = os.Getenv("MONGODB_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}

	cfg.CloudinaryURL = os.Getenv("CLOUDINARY_URL")
	if cfg.CloudinaryURL == "" {
		missing = append(missing, "CLOUDINARY_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt64 is getEnv for integer values. Unparseable values fall back
// rather than erroring; a bad byte limit should not keep the server down.
func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
