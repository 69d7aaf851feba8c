package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// ErrCorruptHistory is returned by HistoryStore.Load when persisted data
// exists but cannot be decoded. The accompanying history is empty.
var ErrCorruptHistory = errors.New("persisted history is corrupt")

// HistoryStore defines the driven port for prayer history persistence.
// Load and Save are its only effects; every operation reads the full
// history, mutates it in memory, and writes it back whole.
type HistoryStore interface {
	// Load returns the full persisted history. Missing data yields an empty
	// history and a nil error. Undecodable data yields an empty history and
	// an error wrapping ErrCorruptHistory.
	Load(ctx context.Context) (model.History, error)

	// Save replaces the persisted history with h. Implementations must not
	// leave a partially written history behind on failure.
	Save(ctx context.Context, h model.History) error
}
