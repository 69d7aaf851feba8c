package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

var vmToday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func TestToDateOptions(t *testing.T) {
	opts := toDateOptions(vmToday, "2024-01-09")

	require.Len(t, opts, 15)
	assert.Equal(t, "2024-01-10 (Today)", opts[0].Label)
	assert.Equal(t, "2024-01-09 (Yesterday)", opts[1].Label)
	assert.True(t, opts[1].Selected)
	assert.Equal(t, "2024-01-08 (2 days ago)", opts[2].Label)
	assert.Equal(t, "2024-01-07", opts[3].Label)
	assert.Equal(t, "2023-12-27", opts[14].Key)
}

func TestToDateOptions_SelectedOutsideRange(t *testing.T) {
	opts := toDateOptions(vmToday, "2023-06-01")

	require.Len(t, opts, 16)
	assert.Equal(t, "2023-06-01", opts[0].Key)
	assert.True(t, opts[0].Selected)
}

func TestToTrackerFormViewModel(t *testing.T) {
	day := application.DayView{
		DateKey:  "2024-01-10",
		Record:   model.DayRecord{"fajr": model.StatusCongregation, "dhuhr": model.StatusMissed},
		Exists:   true,
		Score:    3,
		Editable: true,
	}

	form := toTrackerFormViewModel(day, vmToday, "")

	require.Len(t, form.Prayers, 5)
	fajr := form.Prayers[0]
	assert.Equal(t, "fajr", fajr.Key)
	require.Len(t, fajr.Options, 4)
	assert.True(t, fajr.Options[0].Checked)
	assert.Equal(t, "fajr_congregation", fajr.Options[0].InputID)
	assert.Equal(t, "fajr_missed", fajr.Options[3].InputID)
	assert.True(t, form.Prayers[1].Options[3].Checked, "explicit missed is checked")
	assert.True(t, form.Prayers[2].Options[3].Checked, "absent key on existing day reads as missed")
	assert.Equal(t, 15, form.MaxScore)
}

func TestToTrackerFormViewModel_Prefill(t *testing.T) {
	tests := []struct {
		name        string
		editable    bool
		wantChecked bool
	}{
		{"editable day is prefilled", true, true},
		{"locked day ignores prefill", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := application.DayView{DateKey: "2024-01-10", Editable: tt.editable}

			form := toTrackerFormViewModel(day, vmToday, model.StatusCongregation)

			for _, row := range form.Prayers {
				assert.Equal(t, tt.wantChecked, row.Options[0].Checked, row.Key)
			}
		})
	}
}

func TestToTrackerFormViewModel_AbsentDayHasNothingChecked(t *testing.T) {
	form := toTrackerFormViewModel(application.DayView{DateKey: "2024-01-10", Editable: true}, vmToday, "")

	for _, row := range form.Prayers {
		for _, opt := range row.Options {
			assert.False(t, opt.Checked, opt.InputID)
		}
	}
}

func TestRingDash(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{0, "0.0 326.7"},
		{50, "163.4 326.7"},
		{100, "326.7 326.7"},
		{150, "326.7 326.7"},
		{-5, "0.0 326.7"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ringDash(tt.percentage), "percentage %d", tt.percentage)
	}
}

func TestToHeatmap(t *testing.T) {
	cells := toHeatmap([]model.DailyScore{
		{DateKey: "2024-01-09", Score: 7, Level: 1},
		{DateKey: "2024-01-10", Score: 12, Level: 3},
	})

	require.Len(t, cells, 2)
	assert.Equal(t, "2024-01-10 - Score: 12/15", cells[1].Title)
	assert.Equal(t, 10, cells[1].Day)
	assert.Equal(t, 3, cells[1].Level)
	assert.Equal(t, "/?date=2024-01-09", cells[0].Link)
}

func TestToDailyChart_ColoursBars(t *testing.T) {
	c := toDailyChart("manager-chart", "Daily", []model.DailyScore{
		{DateKey: "2024-01-09", Score: 0, Level: 0},
		{DateKey: "2024-01-10", Score: 15, Level: 3},
	}, true)

	assert.Equal(t, []string{"Jan 9", "Jan 10"}, c.Labels)
	assert.Equal(t, []string{"level-0", "level-3"}, c.BarClasses)
	assert.Equal(t, []int{0, 15}, c.Series[0].Values)
	assert.Equal(t, 15, c.Max)
}

func TestToMonthlyChart(t *testing.T) {
	c := toMonthlyChart([]model.MonthAggregate{
		{Month: "2023-12", TotalRecorded: 4, Congregation: 1, Individual: 2, Qada: 1},
	})

	assert.Equal(t, []string{"Dec 2023"}, c.Labels)
	require.Len(t, c.Series, 3)
	assert.Equal(t, []int{25}, c.Series[0].Values)
	assert.Equal(t, []int{50}, c.Series[1].Values)
	assert.Equal(t, []int{25}, c.Series[2].Values)
	assert.Equal(t, 100, c.Max)
}

func TestToPrayerChart(t *testing.T) {
	c := toPrayerChart(application.PrayerBreakdown{
		WindowDays:   15,
		Congregation: map[string]int{"fajr": 4},
		Individual:   map[string]int{"isha": 2},
		Qada:         map[string]int{},
	})

	assert.Equal(t, []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}, c.Labels)
	assert.True(t, c.Stacked)
	assert.Equal(t, []int{4, 0, 0, 0, 0}, c.Series[0].Values)
	assert.Equal(t, []int{0, 0, 0, 0, 2}, c.Series[1].Values)
}

func TestToDataRows(t *testing.T) {
	rows := toDataRows(model.History{
		"2024-01-08": {"fajr": model.StatusQada},
		"2024-01-10": {"asr": model.StatusIndividual},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-10", rows[0].DateKey)
	assert.Equal(t, 2, rows[0].Score)
	assert.Equal(t, "Not Prayed", rows[0].Cells[0].Options[3].Label)
	assert.True(t, rows[0].Cells[0].Options[3].Selected)
	assert.True(t, rows[0].Cells[2].Options[1].Selected)
	assert.True(t, rows[1].Cells[0].Options[2].Selected)
}
