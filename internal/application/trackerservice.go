package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
	"github.com/ericfisherdev/salahtracker/internal/domain/port/driven"
)

// ErrNotEditable is returned by SaveDay for dates outside the editable window.
var ErrNotEditable = errors.New("date is outside the editable window")

// DayView is a single day as shown on the tracker form.
type DayView struct {
	DateKey  string
	Record   model.DayRecord
	Exists   bool
	Score    int
	Editable bool
}

// ImportResult describes the outcome of an import attempt.
type ImportResult struct {
	Imported  int      // Number of days in the import payload.
	Conflicts []string // Dates that already had a record, sorted.
	Applied   bool     // False when conflicts were found and overwrite was not allowed.
}

// TrackerService is the transaction boundary for prayer history. Every
// operation loads the full history from the store, works on it in memory,
// and writes it back whole. Writers are serialized so concurrent requests
// cannot interleave a load and a save.
type TrackerService struct {
	store  driven.HistoryStore
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger

	mu sync.Mutex
}

// NewTrackerService creates a TrackerService. A nil loc uses time.Local, a nil
// now uses time.Now, and a nil logger uses slog.Default().
func NewTrackerService(store driven.HistoryStore, loc *time.Location, now func() time.Time, logger *slog.Logger) *TrackerService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackerService{
		store:  store,
		loc:    loc,
		now:    now,
		logger: logger,
	}
}

// Today returns local midnight of the current date.
func (s *TrackerService) Today() time.Time {
	return model.Today(s.now(), s.loc)
}

// TodayKey returns the date key of the current date.
func (s *TrackerService) TodayKey() string {
	return model.DateKey(s.Today())
}

// History returns the full persisted history. Missing, corrupt, or
// unreadable data is logged and reported as an empty history.
func (s *TrackerService) History(ctx context.Context) model.History {
	h, err := s.store.Load(ctx)
	if err != nil {
		s.logLoadError(err)
		return model.History{}
	}
	if h == nil {
		return model.History{}
	}
	return h
}

// Day returns the view of a single date for the tracker form.
func (s *TrackerService) Day(ctx context.Context, dateKey string) (DayView, error) {
	date, err := model.ParseDateKey(dateKey, s.loc)
	if err != nil {
		return DayView{}, err
	}

	h := s.History(ctx)
	record, exists := h[dateKey]

	return DayView{
		DateKey:  dateKey,
		Record:   record,
		Exists:   exists,
		Score:    record.Score(),
		Editable: model.IsEditable(s.Today(), date),
	}, nil
}

// IsEditable reports whether dateKey falls inside the tracker form's
// editable window. Malformed keys are not editable.
func (s *TrackerService) IsEditable(dateKey string) bool {
	date, err := model.ParseDateKey(dateKey, s.loc)
	if err != nil {
		return false
	}
	return model.IsEditable(s.Today(), date)
}

// SaveDay replaces the record for dateKey with one holding a status for each
// of the five prayers; prayers missing from statuses are saved as missed.
// Only dates inside the editable window are accepted.
func (s *TrackerService) SaveDay(ctx context.Context, dateKey string, statuses map[string]model.PrayerStatus) error {
	if !model.IsDateKey(dateKey) {
		return fmt.Errorf("%w %q", model.ErrInvalidDateKey, dateKey)
	}
	if !s.IsEditable(dateKey) {
		return fmt.Errorf("save day %s: %w", dateKey, ErrNotEditable)
	}

	record := model.EmptyDayRecord()
	for prayerKey, status := range statuses {
		if err := model.ValidateEntry(dateKey, prayerKey, status); err != nil {
			return fmt.Errorf("save day %s: %w", dateKey, err)
		}
		record[prayerKey] = status
	}

	return s.update(ctx, "save day", func(h model.History) (model.History, error) {
		return h.SetDay(dateKey, record), nil
	})
}

// SetStatus sets a single prayer's status on dateKey, creating the day if
// needed. This is the per-cell edit of the data manager and is not limited
// to the editable window.
func (s *TrackerService) SetStatus(ctx context.Context, dateKey, prayerKey string, status model.PrayerStatus) error {
	if err := model.ValidateEntry(dateKey, prayerKey, status); err != nil {
		return fmt.Errorf("set status %s/%s: %w", dateKey, prayerKey, err)
	}

	return s.update(ctx, "set status", func(h model.History) (model.History, error) {
		return h.SetDayStatus(dateKey, prayerKey, status), nil
	})
}

// ClearDay removes the record for dateKey entirely.
func (s *TrackerService) ClearDay(ctx context.Context, dateKey string) error {
	if !model.IsDateKey(dateKey) {
		return fmt.Errorf("%w %q", model.ErrInvalidDateKey, dateKey)
	}

	return s.update(ctx, "clear day", func(h model.History) (model.History, error) {
		return h.ClearDay(dateKey), nil
	})
}

// AddToday creates an all-missed record for today if none exists. It
// reports whether a record was created; nothing is written otherwise.
func (s *TrackerService) AddToday(ctx context.Context) (bool, error) {
	key := s.TodayKey()
	var created bool

	err := s.update(ctx, "add today", func(h model.History) (model.History, error) {
		var next model.History
		next, created = h.EnsureDay(key)
		if !created {
			return nil, nil
		}
		return next, nil
	})

	return created, err
}

// Import parses data, normalizes it, and merges it into the store with
// import-wins semantics. When the import overlaps existing dates and
// overwrite is false, nothing is written and Applied is false so the caller
// can ask the user for confirmation. The store is re-read inside the
// transaction so edits made since the caller last loaded it are not lost.
func (s *TrackerService) Import(ctx context.Context, data []byte, overwrite bool) (ImportResult, error) {
	raw, err := ParseImport(data)
	if err != nil {
		return ImportResult{}, err
	}
	imported := Normalize(raw)
	result := ImportResult{Imported: len(imported)}

	err = s.update(ctx, "import", func(h model.History) (model.History, error) {
		merge := MergeImport(h, imported)
		result.Conflicts = merge.Conflicts
		if len(merge.Conflicts) > 0 && !overwrite {
			return nil, nil
		}
		result.Applied = true
		return merge.Merged, nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	if result.Applied {
		s.logger.Info("history imported", "days", result.Imported, "overwritten", len(result.Conflicts))
	}
	return result, nil
}

// ExportJSON returns the full history as indented JSON and its file name.
func (s *TrackerService) ExportJSON(ctx context.Context) ([]byte, string, error) {
	data, err := ToJSON(s.History(ctx))
	if err != nil {
		return nil, "", err
	}
	return data, ExportFilename(s.Today(), "json"), nil
}

// ExportCSV returns the full history as CSV and its file name.
func (s *TrackerService) ExportCSV(ctx context.Context) ([]byte, string) {
	return ToCSV(s.History(ctx)), ExportFilename(s.Today(), "csv")
}

// update runs one load-mutate-save transaction. fn returns the history to
// persist, or nil to leave the store untouched. A store that cannot be read
// aborts the transaction; a corrupt store is replaced.
func (s *TrackerService) update(ctx context.Context, op string, fn func(model.History) (model.History, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, driven.ErrCorruptHistory) {
			return fmt.Errorf("%s: load history: %w", op, err)
		}
		s.logLoadError(err)
		h = model.History{}
	}
	if h == nil {
		h = model.History{}
	}

	next, err := fn(h)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if next == nil {
		return nil
	}

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("%s: save history: %w", op, err)
	}
	s.logger.Debug("history saved", "op", op, "days", len(next))
	return nil
}

func (s *TrackerService) logLoadError(err error) {
	if errors.Is(err, driven.ErrCorruptHistory) {
		s.logger.Warn("persisted history is corrupt, treating as empty", "error", err)
		return
	}
	s.logger.Error("failed to load history, treating as empty", "error", err)
}
