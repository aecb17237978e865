// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSpanner  = "spanner"
)

// Config holds application configuration.
type Config struct {
	StoreBackend string
	SpannerDB    string
	DatabaseDSN  string
	GRPCPort     string
	HTTPPort     string
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
	OTLPInsecure bool
	CatalogFile  string
}

// Load reads an optional .env file, then the environment, applying defaults.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	insecure, err := strconv.ParseBool(getEnv("OTEL_EXPORTER_OTLP_INSECURE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("OTEL_EXPORTER_OTLP_INSECURE: %w", err)
	}

	cfg := Config{
		StoreBackend: getEnv("STORE_BACKEND", BackendSQLite),
		// Default for local development with emulator
		SpannerDB:    getEnv("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/rebates-db"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "file:rebates.db"),
		GRPCPort:     getEnv("GRPC_PORT", "9090"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: insecure,
		CatalogFile:  os.Getenv("CATALOG_FILE"),
	}

	return cfg, cfg.Validate()
}

// Validate rejects unusable settings.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the %s backend", c.StoreBackend)
		}
	case BackendSpanner:
		if c.SpannerDB == "" {
			return errors.New("SPANNER_DATABASE is required for the spanner backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.GRPCPort == "" {
		return errors.New("GRPC_PORT cannot be empty")
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
