package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

var statsToday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func completeDay(status model.PrayerStatus) model.DayRecord {
	r := model.DayRecord{}
	for _, p := range model.Prayers {
		r[p.Key] = status
	}
	return r
}

func dayKey(offset int) string {
	return model.DateKey(model.AddDays(statsToday, offset))
}

func TestStreak(t *testing.T) {
	partial := completeDay(model.StatusCongregation)
	partial["isha"] = model.StatusMissed

	tests := []struct {
		name    string
		history model.History
		want    int
	}{
		{
			name:    "empty store",
			history: model.History{},
			want:    0,
		},
		{
			name:    "today absent",
			history: model.History{dayKey(-1): completeDay(model.StatusQada)},
			want:    0,
		},
		{
			name:    "today incomplete",
			history: model.History{dayKey(0): partial, dayKey(-1): completeDay(model.StatusQada)},
			want:    0,
		},
		{
			name:    "today exists but empty",
			history: model.History{dayKey(0): model.EmptyDayRecord()},
			want:    0,
		},
		{
			name:    "only today",
			history: model.History{dayKey(0): completeDay(model.StatusCongregation)},
			want:    1,
		},
		{
			name: "mixed statuses count as complete",
			history: model.History{
				dayKey(0):  completeDay(model.StatusQada),
				dayKey(-1): completeDay(model.StatusIndividual),
				dayKey(-2): completeDay(model.StatusCongregation),
			},
			want: 3,
		},
		{
			name: "stops at first gap",
			history: model.History{
				dayKey(0):  completeDay(model.StatusCongregation),
				dayKey(-1): completeDay(model.StatusCongregation),
				dayKey(-3): completeDay(model.StatusCongregation),
			},
			want: 2,
		},
		{
			name: "stops at partial day",
			history: model.History{
				dayKey(0):  completeDay(model.StatusCongregation),
				dayKey(-1): partial,
				dayKey(-2): completeDay(model.StatusCongregation),
			},
			want: 1,
		},
		{
			name: "unknown status breaks the streak",
			history: model.History{
				dayKey(0): {"fajr": "prayed", "dhuhr": "prayed", "asr": "prayed", "maghrib": "prayed", "isha": "prayed"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.history, statsToday))
		})
	}
}

func TestStreak_IncrementsPerPrecedingDay(t *testing.T) {
	h := model.History{}
	for i := 0; i < 5; i++ {
		h[dayKey(-i)] = completeDay(model.StatusIndividual)
		assert.Equal(t, i+1, Streak(h, statsToday))
	}
}

func TestStreak_CappedAtOneYear(t *testing.T) {
	h := model.History{}
	for i := 0; i < 400; i++ {
		h[dayKey(-i)] = completeDay(model.StatusCongregation)
	}

	assert.Equal(t, 365, Streak(h, statsToday))
}

func TestRangeTotals(t *testing.T) {
	t.Run("empty store over 15 days", func(t *testing.T) {
		got := RangeTotals(model.History{}, statsToday, 15)
		assert.Equal(t, model.RangeTotals{Completed: 0, Possible: 75, Percentage: 0}, got)
	})

	t.Run("zero window", func(t *testing.T) {
		got := RangeTotals(model.History{dayKey(0): completeDay(model.StatusQada)}, statsToday, 0)
		assert.Equal(t, model.RangeTotals{}, got)
	})

	t.Run("counts only inside the window", func(t *testing.T) {
		h := model.History{
			dayKey(0):   completeDay(model.StatusCongregation),                              // 5
			dayKey(-2):  {"fajr": model.StatusQada, "asr": model.StatusMissed, "isha": "x"}, // 1
			dayKey(-14): {"dhuhr": model.StatusIndividual},                                  // 1
			dayKey(-15): completeDay(model.StatusCongregation),                              // outside
			dayKey(1):   completeDay(model.StatusCongregation),                              // future
		}

		got := RangeTotals(h, statsToday, 15)
		assert.Equal(t, 7, got.Completed)
		assert.Equal(t, 75, got.Possible)
		assert.Equal(t, 9, got.Percentage) // 7/75 = 9.33%
	})

	t.Run("rounds to nearest percent", func(t *testing.T) {
		h := model.History{dayKey(0): {"fajr": model.StatusQada, "dhuhr": model.StatusIndividual}}
		got := RangeTotals(h, statsToday, 3) // 2/15
		assert.Equal(t, 13, got.Percentage)
	})
}

func TestPerPrayerCounts(t *testing.T) {
	h := model.History{
		dayKey(0):  {"fajr": model.StatusCongregation, "isha": model.StatusQada},
		dayKey(-1): {"fajr": model.StatusCongregation, "asr": model.StatusCongregation},
		dayKey(-5): {"fajr": model.StatusCongregation},
	}

	got := PerPrayerCounts(h, statsToday, 3, model.StatusCongregation)

	assert.Equal(t, map[string]int{"fajr": 2, "dhuhr": 0, "asr": 1, "maghrib": 0, "isha": 0}, got)
	assert.Equal(t, 1, PerPrayerCounts(h, statsToday, 3, model.StatusQada)["isha"])
	assert.Len(t, PerPrayerCounts(model.History{}, statsToday, 15, model.StatusIndividual), 5)
}

func TestMonthlyAggregates(t *testing.T) {
	h := model.History{
		"2024-02-01": {"fajr": model.StatusQada, "dhuhr": model.StatusMissed},
		"2023-12-31": completeDay(model.StatusCongregation),
		"2024-01-15": {"fajr": model.StatusIndividual, "asr": "unknown"},
		"2024-01-02": {"fajr": model.StatusCongregation, "isha": model.StatusIndividual},
	}

	got := MonthlyAggregates(h)

	assert.Equal(t, []model.MonthAggregate{
		{Month: "2023-12", TotalRecorded: 5, Congregation: 5},
		{Month: "2024-01", TotalRecorded: 3, Congregation: 1, Individual: 2},
		{Month: "2024-02", TotalRecorded: 1, Qada: 1},
	}, got)
}

func TestRecentMonths(t *testing.T) {
	var months []model.MonthAggregate
	for m := 1; m <= 14; m++ {
		months = append(months, model.MonthAggregate{Month: model.DateKey(time.Date(2023, time.Month(m), 1, 0, 0, 0, 0, time.UTC))[:7]})
	}

	recent := RecentMonths(months, 12)

	assert.Len(t, recent, 12)
	assert.Equal(t, "2023-03", recent[0].Month)
	assert.Equal(t, "2024-02", recent[11].Month)
	assert.Len(t, RecentMonths(months[:3], 12), 3)
}

func TestDailyScores(t *testing.T) {
	h := model.History{
		dayKey(0):  completeDay(model.StatusCongregation),
		dayKey(-2): {"fajr": model.StatusIndividual},
	}

	got := DailyScores(h, statsToday, 3)

	assert.Equal(t, []model.DailyScore{
		{DateKey: dayKey(-2), Score: 2, Level: 1},
		{DateKey: dayKey(-1), Score: 0, Level: 0},
		{DateKey: dayKey(0), Score: 15, Level: 3},
	}, got)
}
