package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

func TestParseImport_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "hello"},
		{"array", `[{"2024-01-01": {}}]`},
		{"string", `"2024-01-01"`},
		{"null", `null`},
		{"truncated", `{"2024-01-01": {"fajr": "qada"}`},
		{"trailing garbage", `{"2024-01-01": {}} junk`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImport([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidImport)
		})
	}
}

func TestNormalize_LegacyBooleansAndCasing(t *testing.T) {
	raw, err := ParseImport([]byte(`{"2024-01-01": {"Fajr": true}}`))
	require.NoError(t, err)

	got := Normalize(raw)

	assert.Equal(t, model.History{"2024-01-01": {"fajr": model.StatusIndividual}}, got)
}

func TestNormalize_Values(t *testing.T) {
	raw, err := ParseImport([]byte(`{
		"2024-01-02": {
			"FAJR": false,
			"Dhuhr": "congregation",
			"aSr": "late",
			"Maghrib": null,
			"isha": 3
		},
		"2024-01-03": "not an object",
		"2024-01-04": {}
	}`))
	require.NoError(t, err)

	got := Normalize(raw)

	assert.Equal(t, model.History{
		"2024-01-02": {
			"fajr":    model.StatusMissed,
			"dhuhr":   model.StatusCongregation,
			"asr":     "late",
			"maghrib": model.StatusMissed,
			"isha":    "3",
		},
		"2024-01-03": {},
		"2024-01-04": {},
	}, got)
}

func TestNormalize_CollidingKeysAreDeterministic(t *testing.T) {
	raw := map[string]any{
		"2024-01-01": map[string]any{"FAJR": "qada", "Fajr": "individual", "fajr": "congregation"},
	}

	for i := 0; i < 20; i++ {
		got := Normalize(raw)
		assert.Equal(t, model.StatusCongregation, got["2024-01-01"]["fajr"])
	}
}

func TestNormalize_RoundTripsExport(t *testing.T) {
	h := model.History{
		"2024-01-01": completeDay(model.StatusCongregation),
		"2024-01-02": {"fajr": model.StatusQada, "isha": model.StatusMissed},
		"2024-01-03": {},
	}

	data, err := ToJSON(h)
	require.NoError(t, err)
	raw, err := ParseImport(data)
	require.NoError(t, err)

	assert.Equal(t, h, Normalize(raw))
}

func TestMergeImport(t *testing.T) {
	current := model.History{
		"2024-01-01": completeDay(model.StatusCongregation),
		"2024-01-02": {"fajr": model.StatusQada, "dhuhr": model.StatusIndividual},
		"2024-01-03": {"isha": model.StatusIndividual},
	}
	imported := model.History{
		"2024-01-02": {"asr": model.StatusCongregation},
		"2024-01-03": {},
		"2024-01-04": {"fajr": model.StatusIndividual},
	}

	result := MergeImport(current, imported)

	assert.Equal(t, []string{"2024-01-02", "2024-01-03"}, result.Conflicts)
	// Import wins wholesale: no field-level merge within a day.
	assert.Equal(t, model.DayRecord{"asr": model.StatusCongregation}, result.Merged["2024-01-02"])
	assert.Equal(t, model.DayRecord{}, result.Merged["2024-01-03"])
	assert.Equal(t, completeDay(model.StatusCongregation), result.Merged["2024-01-01"])
	assert.Equal(t, model.DayRecord{"fajr": model.StatusIndividual}, result.Merged["2024-01-04"])
	assert.Len(t, result.Merged, 4)

	// Inputs are untouched.
	assert.Equal(t, model.StatusQada, current["2024-01-02"]["fajr"])
	assert.False(t, current.Has("2024-01-04"))
}

func TestMergeImport_NoConflicts(t *testing.T) {
	result := MergeImport(model.History{}, model.History{"2024-01-01": {}})

	assert.Empty(t, result.Conflicts)
	assert.NotNil(t, result.Conflicts)
	assert.True(t, result.Merged.Has("2024-01-01"))
}
