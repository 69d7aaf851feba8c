package application

import (
	"time"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// streakLookbackDays caps how far back Streak walks. A streak longer than a
// year is reported as 365.
const streakLookbackDays = 365

// Streak counts consecutive fully complete days ending at today, walking
// backward. The walk stops at the first day that has no record or has any
// prayer without a recognized non-missed status; that day is not counted.
func Streak(h model.History, today time.Time) int {
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		day, ok := h[model.DateKey(model.AddDays(today, -i))]
		if !ok || !day.IsComplete() {
			break
		}
		streak++
	}
	return streak
}

// RangeTotals counts performed prayers over the windowDays most recent days,
// today included. Days without a record contribute nothing.
func RangeTotals(h model.History, today time.Time, windowDays int) model.RangeTotals {
	if windowDays < 0 {
		windowDays = 0
	}

	totals := model.RangeTotals{Possible: windowDays * model.PrayerCount}
	for i := 0; i < windowDays; i++ {
		totals.Completed += h[model.DateKey(model.AddDays(today, -i))].Completed()
	}
	totals.Percentage = model.Percent(totals.Completed, totals.Possible)

	return totals
}

// PerPrayerCounts returns, for each of the five prayers, how many of the
// windowDays most recent days recorded exactly status for that prayer.
func PerPrayerCounts(h model.History, today time.Time, windowDays int, status model.PrayerStatus) map[string]int {
	counts := make(map[string]int, model.PrayerCount)
	for _, p := range model.Prayers {
		counts[p.Key] = 0
	}

	for i := 0; i < windowDays; i++ {
		day := h[model.DateKey(model.AddDays(today, -i))]
		if day == nil {
			continue
		}
		for _, p := range model.Prayers {
			if day[p.Key] == status {
				counts[p.Key]++
			}
		}
	}

	return counts
}

// MonthlyAggregates groups every day record by month (the first seven
// characters of its date key) and sums performed prayers per status.
// Months are returned in chronological order.
func MonthlyAggregates(h model.History) []model.MonthAggregate {
	var months []model.MonthAggregate
	index := make(map[string]int)

	for _, key := range h.Keys() {
		month := key
		if len(month) > 7 {
			month = month[:7]
		}

		i, ok := index[month]
		if !ok {
			months = append(months, model.MonthAggregate{Month: month})
			i = len(months) - 1
			index[month] = i
		}

		agg := &months[i]
		for _, p := range model.Prayers {
			switch h[key][p.Key] {
			case model.StatusCongregation:
				agg.Congregation++
			case model.StatusIndividual:
				agg.Individual++
			case model.StatusQada:
				agg.Qada++
			default:
				continue
			}
			agg.TotalRecorded++
		}
	}

	return months
}

// RecentMonths returns the last n aggregates of a chronologically ordered slice.
func RecentMonths(months []model.MonthAggregate, n int) []model.MonthAggregate {
	if n <= 0 {
		return []model.MonthAggregate{}
	}
	if len(months) <= n {
		return months
	}
	return months[len(months)-n:]
}

// DailyScores returns the score series for the days most recent days,
// oldest first, ending at today.
func DailyScores(h model.History, today time.Time, days int) []model.DailyScore {
	if days < 0 {
		days = 0
	}

	series := make([]model.DailyScore, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := model.DateKey(model.AddDays(today, -i))
		score := h[key].Score()
		series = append(series, model.DailyScore{
			DateKey: key,
			Score:   score,
			Level:   model.ScoreLevel(score),
		})
	}

	return series
}
