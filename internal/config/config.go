// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by SALAHTRACKER_STORE.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr  string
	Store       string
	DBPath      string
	DataFile    string
	Location    *time.Location
	LogLevel    slog.Level
	SummaryDays int
}

// LoadDotEnv loads variables from path into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// Optional variables with defaults: SALAHTRACKER_LISTEN_ADDR (127.0.0.1:8080),
// SALAHTRACKER_STORE (sqlite), SALAHTRACKER_DB_PATH (salahtracker.db),
// SALAHTRACKER_DATA_FILE (salahtracker.json), SALAHTRACKER_TIMEZONE (process
// local zone), SALAHTRACKER_LOG_LEVEL (info), SALAHTRACKER_SUMMARY_DAYS (15).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("SALAHTRACKER_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	store := StoreSQLite
	if v, ok := os.LookupEnv("SALAHTRACKER_STORE"); ok && v != "" {
		store = strings.ToLower(strings.TrimSpace(v))
	}
	if store != StoreSQLite && store != StoreFile {
		return nil, fmt.Errorf("SALAHTRACKER_STORE must be %q or %q, got %q", StoreSQLite, StoreFile, store)
	}

	dbPath := "salahtracker.db"
	if v, ok := os.LookupEnv("SALAHTRACKER_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	dataFile := "salahtracker.json"
	if v, ok := os.LookupEnv("SALAHTRACKER_DATA_FILE"); ok && v != "" {
		dataFile = v
	}

	loc := time.Local
	if v, ok := os.LookupEnv("SALAHTRACKER_TIMEZONE"); ok && v != "" {
		parsed, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("SALAHTRACKER_TIMEZONE has invalid zone %q: %w", v, err)
		}
		loc = parsed
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("SALAHTRACKER_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("SALAHTRACKER_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	summaryDays := 15
	if v, ok := os.LookupEnv("SALAHTRACKER_SUMMARY_DAYS"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 366 {
			return nil, fmt.Errorf("SALAHTRACKER_SUMMARY_DAYS must be between 1 and 366, got %q", v)
		}
		summaryDays = parsed
	}

	return &Config{
		ListenAddr:  listenAddr,
		Store:       store,
		DBPath:      dbPath,
		DataFile:    dataFile,
		Location:    loc,
		LogLevel:    logLevel,
		SummaryDays: summaryDays,
	}, nil
}
