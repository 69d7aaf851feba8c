package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
	"github.com/ericfisherdev/salahtracker/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

// HistoryRepo is the SQLite implementation of the HistoryStore port. A day
// is a row in days; each recorded prayer is a row in prayer_entries. A day
// row without entries is an empty day record.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new HistoryRepo backed by the given DB.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Load reads every day and its prayer entries in one statement, so a
// concurrent Save is seen either entirely or not at all. An empty database
// yields an empty history. Entries whose day row is missing make the
// history corrupt.
func (r *HistoryRepo) Load(ctx context.Context) (model.History, error) {
	const query = `
		SELECT d.date_key, e.prayer_key, e.status, 1
		FROM days d
		LEFT JOIN prayer_entries e ON e.date_key = d.date_key
		UNION ALL
		SELECT e.date_key, e.prayer_key, e.status, 0
		FROM prayer_entries e
		WHERE NOT EXISTS (SELECT 1 FROM days d WHERE d.date_key = e.date_key)`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return model.History{}, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	h := model.History{}
	for rows.Next() {
		var (
			dateKey           string
			prayerKey, status sql.NullString
			hasDay            bool
		)
		if err := rows.Scan(&dateKey, &prayerKey, &status, &hasDay); err != nil {
			return model.History{}, fmt.Errorf("scan history row: %w", err)
		}
		if !hasDay {
			return model.History{}, fmt.Errorf("prayer entry for missing day %q: %w", dateKey, driven.ErrCorruptHistory)
		}

		day, ok := h[dateKey]
		if !ok {
			day = model.DayRecord{}
			h[dateKey] = day
		}
		if prayerKey.Valid {
			day[prayerKey.String] = model.PrayerStatus(status.String)
		}
	}
	if err := rows.Err(); err != nil {
		return model.History{}, fmt.Errorf("iterate history: %w", err)
	}

	return h, nil
}

// Save replaces the stored history with h inside a single transaction, so a
// failure leaves the previous history intact.
func (r *HistoryRepo) Save(ctx context.Context, h model.History) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prayer_entries`); err != nil {
		return fmt.Errorf("clear prayer_entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM days`); err != nil {
		return fmt.Errorf("clear days: %w", err)
	}

	dayStmt, err := tx.PrepareContext(ctx, `INSERT INTO days (date_key) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("prepare day insert: %w", err)
	}
	defer dayStmt.Close()

	entryStmt, err := tx.PrepareContext(ctx, `INSERT INTO prayer_entries (date_key, prayer_key, status) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer entryStmt.Close()

	for _, dateKey := range h.Keys() {
		if _, err := dayStmt.ExecContext(ctx, dateKey); err != nil {
			return fmt.Errorf("insert day %q: %w", dateKey, err)
		}
		for prayerKey, status := range h[dateKey] {
			if _, err := entryStmt.ExecContext(ctx, dateKey, prayerKey, string(status)); err != nil {
				return fmt.Errorf("insert entry %s/%s: %w", dateKey, prayerKey, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}
