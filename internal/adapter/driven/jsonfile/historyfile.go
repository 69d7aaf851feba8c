// Package jsonfile implements the HistoryStore port as a single JSON document
// on disk, the same shape as the JSON export.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
	"github.com/ericfisherdev/salahtracker/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryFile)(nil)

// HistoryFile stores the whole history as one JSON object keyed by date.
// Saves write a temporary file and rename it over the target, so readers
// never observe a partial document.
type HistoryFile struct {
	path string
}

// NewHistoryFile creates a HistoryFile at path. The file is created on the
// first save; its parent directory must exist or be creatable.
func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{path: path}
}

// Path returns the backing file path.
func (f *HistoryFile) Path() string {
	return f.path
}

// Load reads and decodes the history file. A missing or blank file is an
// empty history. Undecodable content returns an empty history and an error
// wrapping driven.ErrCorruptHistory.
func (f *HistoryFile) Load(ctx context.Context) (model.History, error) {
	if err := ctx.Err(); err != nil {
		return model.History{}, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.History{}, nil
	}
	if err != nil {
		return model.History{}, fmt.Errorf("read history file %q: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.History{}, nil
	}

	var h model.History
	if err := json.Unmarshal(data, &h); err != nil {
		return model.History{}, fmt.Errorf("decode history file %q: %w: %v", f.path, driven.ErrCorruptHistory, err)
	}
	if h == nil {
		return model.History{}, nil
	}
	for key, day := range h {
		if day == nil {
			h[key] = model.DayRecord{}
		}
	}

	return h, nil
}

// Save encodes h and atomically replaces the history file.
func (f *HistoryFile) Save(ctx context.Context, h model.History) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h == nil {
		h = model.History{}
	}

	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create history dir %q: %w", dir, err)
		}
	}

	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write history file %q: %w", f.path, err)
	}
	return nil
}
