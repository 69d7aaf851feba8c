package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
	"github.com/ericfisherdev/salahtracker/internal/domain/port/driven"
)

func TestHistoryRepo_LoadEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)

	h, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, h)
	assert.Empty(t, h)
}

func TestHistoryRepo_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)
	ctx := context.Background()

	want := model.History{
		"2024-01-01": {
			"fajr":    model.StatusCongregation,
			"dhuhr":   model.StatusIndividual,
			"asr":     model.StatusQada,
			"maghrib": model.StatusMissed,
			"isha":    model.StatusCongregation,
		},
		"2024-01-02": {},                  // exists but empty
		"2024-01-03": {"tahajjud": "odd"}, // passed through from an import
	}

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHistoryRepo_SaveReplacesEverything(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, model.History{
		"2024-01-01": {"fajr": model.StatusQada},
		"2024-01-02": {"isha": model.StatusQada},
	}))
	require.NoError(t, repo.Save(ctx, model.History{
		"2024-01-02": {"asr": model.StatusIndividual},
	}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.History{"2024-01-02": {"asr": model.StatusIndividual}}, got)

	require.NoError(t, repo.Save(ctx, model.History{}))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryRepo_SaveCancelledLeavesPreviousHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)

	before := model.History{"2024-01-01": {"fajr": model.StatusCongregation}}
	require.NoError(t, repo.Save(context.Background(), before))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := repo.Save(ctx, model.History{"2024-02-02": {}})
	require.Error(t, err)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestHistoryRepo_OrphanEntryIsCorrupt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)
	ctx := context.Background()

	_, err := db.Writer.ExecContext(ctx, `PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = db.Writer.ExecContext(ctx,
		`INSERT INTO prayer_entries (date_key, prayer_key, status) VALUES ('2024-01-01', 'fajr', 'qada')`)
	require.NoError(t, err)

	h, err := repo.Load(ctx)
	assert.ErrorIs(t, err, driven.ErrCorruptHistory)
	assert.Empty(t, h)
}

func TestHistoryRepo_LoadDuringConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	writerDB, err := NewDB(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = writerDB.Close() })
	_, err = RunMigrations(writerDB.Writer)
	require.NoError(t, err)

	readerDB, err := NewDB(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = readerDB.Close() })

	writer := NewHistoryRepo(writerDB)
	reader := NewHistoryRepo(readerDB)

	base := model.History{"2024-01-01": {"fajr": model.StatusCongregation, "isha": model.StatusQada}}
	withExtra := base.SetDayStatus("2030-01-01", "asr", model.StatusIndividual)
	require.NoError(t, writer.Save(ctx, base))

	const saves = 200
	done := make(chan struct{})
	var (
		wg      sync.WaitGroup
		saveErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < saves; i++ {
			next := base
			if i%2 == 0 {
				next = withExtra
			}
			if err := writer.Save(ctx, next); err != nil {
				saveErr = err
				return
			}
		}
	}()

	loads := 0
	for running := true; running; loads++ {
		select {
		case <-done:
			running = false
		default:
		}

		h, err := reader.Load(ctx)
		require.NoError(t, err, "load %d", loads)
		assert.Equal(t, base["2024-01-01"], h["2024-01-01"], "load %d", loads)
		if day, ok := h["2030-01-01"]; ok {
			assert.Equal(t, model.StatusIndividual, day["asr"], "load %d", loads)
		}
	}

	wg.Wait()
	require.NoError(t, saveErr)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	version, err := RunMigrations(db.Writer)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestNewDB_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	db, err := NewDB(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = RunMigrations(db.Writer)
	require.NoError(t, err)

	repo := NewHistoryRepo(db)
	require.NoError(t, repo.Save(ctx, model.History{"2024-01-01": model.EmptyDayRecord()}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.EmptyDayRecord(), got["2024-01-01"])
	assert.Equal(t, path, db.Path())
}

func TestNewDB_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "history.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.DirExists(t, filepath.Dir(path))
}

func TestNewDB_EmptyPath(t *testing.T) {
	_, err := NewDB(context.Background(), "")
	assert.Error(t, err)
}
