package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"STORE_BACKEND", "SPANNER_DATABASE", "DATABASE_DSN", "GRPC_PORT", "HTTP_PORT",
	"LOG_LEVEL", "LOG_FORMAT", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE", "CATALOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "file:rebates.db", cfg.DatabaseDSN)
	assert.Equal(t, "9090", cfg.GRPCPort)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.True(t, cfg.OTLPInsecure)
	assert.Empty(t, cfg.CatalogFile)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "spanner")
	t.Setenv("SPANNER_DATABASE", "projects/p/instances/i/databases/d")
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("CATALOG_FILE", "configs/catalog.yaml")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendSpanner, cfg.StoreBackend)
	assert.Equal(t, "projects/p/instances/i/databases/d", cfg.SpannerDB)
	assert.Equal(t, "7000", cfg.GRPCPort)
	assert.Equal(t, "configs/catalog.yaml", cfg.CatalogFile)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=postgres\nDATABASE_DSN=host=db user=rebates\nHTTP_PORT=8181\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("DATABASE_DSN")
		os.Unsetenv("HTTP_PORT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "host=db user=rebates", cfg.DatabaseDSN)
	assert.Equal(t, "8181", cfg.HTTPPort)
}

func TestLoad_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "maybe")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{StoreBackend: BackendSQLite, DatabaseDSN: "file::memory:", GRPCPort: "1", HTTPPort: "2"}
	require.NoError(t, valid.Validate())

	cases := map[string]func(*Config){
		"unknown backend":      func(c *Config) { c.StoreBackend = "mongo" },
		"empty grpc port":      func(c *Config) { c.GRPCPort = "" },
		"empty http port":      func(c *Config) { c.HTTPPort = "" },
		"sqlite without dsn":   func(c *Config) { c.DatabaseDSN = "" },
		"spanner without name": func(c *Config) { c.StoreBackend = BackendSpanner; c.SpannerDB = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
