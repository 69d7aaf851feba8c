package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

type memStore struct {
	history model.History
	saves   int
	loads   int
}

func (m *memStore) Load(_ context.Context) (model.History, error) {
	m.loads++
	return m.history.Clone(), nil
}

func (m *memStore) Save(_ context.Context, h model.History) error {
	m.saves++
	m.history = h.Clone()
	return nil
}

// cliNow is noon on 2024-01-10 UTC.
var cliNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func execute(t *testing.T, store *memStore, stdin string, args ...string) (string, error) {
	t.Helper()
	closed := 0
	open := func(context.Context) (*application.TrackerService, func() error, error) {
		svc := application.NewTrackerService(store, time.UTC, func() time.Time { return cliNow }, slog.Default())
		return svc, func() error { closed++; return nil }, nil
	}

	root := NewRootCmd(open)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		assert.Equal(t, 1, closed, "store closed once")
	}
	return out.String(), err
}

func TestToday(t *testing.T) {
	store := &memStore{history: model.History{}}

	out, err := execute(t, store, "", "today")
	require.NoError(t, err)
	assert.Equal(t, "created record for 2024-01-10\n", out)

	out, err = execute(t, store, "", "today")
	require.NoError(t, err)
	assert.Equal(t, "record for 2024-01-10 already exists\n", out)
	assert.Equal(t, 1, store.saves)
}

func TestSetShowClear(t *testing.T) {
	store := &memStore{history: model.History{}}

	out, err := execute(t, store, "", "set", "2023-02-01", "Fajr", "congregation")
	require.NoError(t, err)
	assert.Equal(t, "2023-02-01 fajr set to Congregation\n", out)

	_, err = execute(t, store, "", "set", "2023-02-01", "isha", "missed")
	require.NoError(t, err)
	assert.Equal(t, model.StatusMissed, store.history["2023-02-01"]["isha"])

	out, err = execute(t, store, "", "show", "2023-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "2023-02-01  score 3/15")
	assert.Contains(t, out, "Fajr     Congregation")
	assert.Contains(t, out, "Isha     Missed")

	_, err = execute(t, store, "", "clear", "2023-02-01")
	require.NoError(t, err)
	assert.False(t, store.history.Has("2023-02-01"))

	out, err = execute(t, store, "", "show", "2023-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2023-02-01: no record\n", out)
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad status", []string{"set", "2024-01-10", "fajr", "late"}, model.ErrInvalidStatus},
		{"bad prayer", []string{"set", "2024-01-10", "witr", "qada"}, model.ErrUnknownPrayer},
		{"bad date", []string{"set", "10/01/2024", "fajr", "qada"}, model.ErrInvalidDateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{history: model.History{}}

			_, err := execute(t, store, "", tt.args...)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.saves)
		})
	}
}

func TestStats(t *testing.T) {
	full := model.DayRecord{}
	for _, p := range model.Prayers {
		full[p.Key] = model.StatusCongregation
	}
	store := &memStore{history: model.History{"2024-01-10": full, "2024-01-09": full}}

	out, err := execute(t, store, "", "stats", "--window", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Last 2 days: 10/10 prayers (100%)")
	assert.Contains(t, out, "Streak:     2")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "MAKE-UP")

	_, err = execute(t, store, "", "stats", "--window", "0")
	assert.Error(t, err)
}

func TestStats_SingleLoad(t *testing.T) {
	store := &memStore{history: model.History{"2024-01-10": {"fajr": model.StatusCongregation}}}

	_, err := execute(t, store, "", "stats")
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads)
}

func TestStats_WindowBounds(t *testing.T) {
	store := &memStore{history: model.History{}}

	_, err := execute(t, store, "", "stats", "--window", "367")
	assert.ErrorContains(t, err, "between 1 and 366")
	assert.Equal(t, 0, store.loads)

	_, err = execute(t, store, "", "stats", "--window", "366")
	assert.NoError(t, err)

	_, err = execute(t, store, "", "stats", "--months", "-1")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	store := &memStore{history: model.History{"2024-01-10": {"fajr": model.StatusQada}}}

	out, err := execute(t, store, "", "export", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,Fajr,Dhuhr,Asr,Maghrib,Isha,DailyScore\n2024-01-10,qada,,,,,1\n", out)

	path := filepath.Join(t.TempDir(), "out.json")
	_, err = execute(t, store, "", "export", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-01-10":{"fajr":"qada"}}`, string(data))

	_, err = execute(t, store, "", "export", "--format", "xml")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	store := &memStore{history: model.History{"2024-01-01": {"fajr": model.StatusQada}}}
	payload := `{"2024-01-01":{"fajr":"individual"},"2024-01-02":{"Asr":true}}`

	_, err := execute(t, store, payload, "import", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 date(s) already exist (2024-01-01)")
	assert.Contains(t, err.Error(), "--yes")
	assert.Equal(t, 0, store.saves)

	out, err := execute(t, store, payload, "import", "-", "-y")
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 entries.\n", out)
	assert.Equal(t, model.StatusIndividual, store.history["2024-01-01"]["fajr"])
	assert.Equal(t, model.StatusIndividual, store.history["2024-01-02"]["asr"])
}

func TestImport_OverwriteFlag(t *testing.T) {
	store := &memStore{history: model.History{"2024-01-01": {"fajr": model.StatusQada}}}

	out, err := execute(t, store, `{"2024-01-01":{"fajr":"congregation"}}`, "import", "-", "--overwrite")
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 entries.\n", out)
	assert.Equal(t, model.StatusCongregation, store.history["2024-01-01"]["fajr"])
}

func TestImport_Invalid(t *testing.T) {
	store := &memStore{history: model.History{}}

	_, err := execute(t, store, "[]", "import", "-")
	assert.ErrorIs(t, err, application.ErrInvalidImport)

	_, err = execute(t, store, "", "import", filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestOpenFailure(t *testing.T) {
	root := NewRootCmd(func(context.Context) (*application.TrackerService, func() error, error) {
		return nil, nil, errors.New("database locked")
	})
	root.SetArgs([]string{"today"})
	root.SetOut(&bytes.Buffer{})

	err := root.Execute()

	assert.ErrorContains(t, err, "open store: database locked")
}
