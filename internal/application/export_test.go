package application

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

func TestToCSV_SingleCongregationDay(t *testing.T) {
	h := model.History{"2024-01-01": completeDay(model.StatusCongregation)}

	lines := strings.Split(strings.TrimRight(string(ToCSV(h)), "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Fajr,Dhuhr,Asr,Maghrib,Isha,DailyScore", lines[0])
	assert.Equal(t, "2024-01-01,congregation,congregation,congregation,congregation,congregation,15", lines[1])
	assert.True(t, strings.HasSuffix(lines[1], ",15"))
}

func TestToCSV_OrderingAndMissingValues(t *testing.T) {
	h := model.History{
		"2024-01-01": {"asr": model.StatusQada},
		"2024-01-03": {"fajr": model.StatusIndividual, "isha": "late"},
		"2024-01-02": {},
	}

	got := string(ToCSV(h))

	want := "Date,Fajr,Dhuhr,Asr,Maghrib,Isha,DailyScore\n" +
		"2024-01-03,individual,,,,late,2\n" +
		"2024-01-02,,,,,,0\n" +
		"2024-01-01,,,qada,,,1\n"
	assert.Equal(t, want, got)
}

func TestToCSV_Empty(t *testing.T) {
	assert.Equal(t, "Date,Fajr,Dhuhr,Asr,Maghrib,Isha,DailyScore\n", string(ToCSV(model.History{})))
}

func TestToJSON_Indented(t *testing.T) {
	data, err := ToJSON(model.History{"2024-01-01": {"fajr": model.StatusQada}})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"2024-01-01\": {\n    \"fajr\": \"qada\"\n  }\n}", string(data))

	empty, err := ToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}

func TestExportFilename(t *testing.T) {
	today := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "salah-tracker-2024-03-05.json", ExportFilename(today, "json"))
	assert.Equal(t, "salah-tracker-2024-03-05.csv", ExportFilename(today, "csv"))
}
