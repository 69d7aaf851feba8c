package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every SALAHTRACKER_ env var that Load() reads.
var allConfigKeys = []string{
	"SALAHTRACKER_LISTEN_ADDR",
	"SALAHTRACKER_STORE",
	"SALAHTRACKER_DB_PATH",
	"SALAHTRACKER_DATA_FILE",
	"SALAHTRACKER_TIMEZONE",
	"SALAHTRACKER_LOG_LEVEL",
	"SALAHTRACKER_SUMMARY_DAYS",
}

// isolateConfigEnv saves and unsets all SALAHTRACKER_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "salahtracker.db", cfg.DBPath)
	assert.Equal(t, "salahtracker.json", cfg.DataFile)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 15, cfg.SummaryDays)
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SALAHTRACKER_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("SALAHTRACKER_STORE", "File")
	t.Setenv("SALAHTRACKER_DB_PATH", "/tmp/test.db")
	t.Setenv("SALAHTRACKER_DATA_FILE", "/tmp/test.json")
	t.Setenv("SALAHTRACKER_TIMEZONE", "Asia/Karachi")
	t.Setenv("SALAHTRACKER_LOG_LEVEL", "debug")
	t.Setenv("SALAHTRACKER_SUMMARY_DAYS", "30")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "/tmp/test.json", cfg.DataFile)
	assert.Equal(t, "Asia/Karachi", cfg.Location.String())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 30, cfg.SummaryDays)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown store", "SALAHTRACKER_STORE", "postgres", "SALAHTRACKER_STORE"},
		{"bad timezone", "SALAHTRACKER_TIMEZONE", "Mars/Olympus", "SALAHTRACKER_TIMEZONE"},
		{"bad log level", "SALAHTRACKER_LOG_LEVEL", "loud", "SALAHTRACKER_LOG_LEVEL"},
		{"non-numeric summary", "SALAHTRACKER_SUMMARY_DAYS", "two weeks", "SALAHTRACKER_SUMMARY_DAYS"},
		{"zero summary", "SALAHTRACKER_SUMMARY_DAYS", "0", "SALAHTRACKER_SUMMARY_DAYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SALAHTRACKER_STORE=file\nSALAHTRACKER_LISTEN_ADDR=127.0.0.1:7070\n"), 0o600))
	t.Setenv("SALAHTRACKER_LISTEN_ADDR", "127.0.0.1:9999")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store)
	// Variables already in the environment win over the file.
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
