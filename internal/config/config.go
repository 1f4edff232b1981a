// Package config loads application configuration from environment
// variables, with a local .env file honored when present.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the query service.
type Config struct {
	// Port is the HTTP port to listen on.
	Port string
	// DBPath is the path to the SQLite database file produced by the
	// ingestion tool.
	DBPath string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; every variable has a default.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:   getenv("APP_PORT", "8080"),
		DBPath: getenv("COUNTY_DB", "data.db"),
	}
}

// getenv returns the value of key, or fallback when unset or empty.
func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
