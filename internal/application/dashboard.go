package application

import (
	"context"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// Chart windows used by the dashboard.
const (
	DefaultSummaryDays = 15
	ManagerChartDays   = 30
	MonthlyChartMonths = 12

	// MaxWindowDays bounds every caller-chosen day window.
	MaxWindowDays = 366
)

// Summary is the progress panel: completion over a window plus the streak.
type Summary struct {
	TodayKey   string
	WindowDays int
	Totals     model.RangeTotals
	Streak     int
}

// PrayerBreakdown is the per-prayer count of each performed status over a window.
type PrayerBreakdown struct {
	WindowDays   int
	Congregation map[string]int
	Individual   map[string]int
	Qada         map[string]int
}

// Dashboard bundles every derived view rendered from one history snapshot.
type Dashboard struct {
	Summary   Summary
	Daily     []model.DailyScore // Last WindowDays days, oldest first; also the heatmap.
	Manager   []model.DailyScore // Last ManagerChartDays days, oldest first.
	Breakdown PrayerBreakdown
	Monthly   []model.MonthAggregate // The most recent months, chronological.
}

// Summary computes the progress panel over the last windowDays days.
func (s *TrackerService) Summary(ctx context.Context, windowDays int) Summary {
	return summarize(s.History(ctx), s, windowDays)
}

// Breakdown computes per-prayer status counts over the last windowDays days.
func (s *TrackerService) Breakdown(ctx context.Context, windowDays int) PrayerBreakdown {
	return breakdown(s.History(ctx), s, windowDays)
}

// Daily returns the score of each of the last days days, oldest first.
func (s *TrackerService) Daily(ctx context.Context, days int) []model.DailyScore {
	return DailyScores(s.History(ctx), s.Today(), days)
}

// Monthly returns the most recent limit months of aggregates, chronological.
func (s *TrackerService) Monthly(ctx context.Context, limit int) []model.MonthAggregate {
	return RecentMonths(MonthlyAggregates(s.History(ctx)), limit)
}

// Dashboard loads the history once and derives every dashboard view from
// it, keeping the most recent months monthly aggregates.
func (s *TrackerService) Dashboard(ctx context.Context, windowDays, months int) Dashboard {
	h := s.History(ctx)
	today := s.Today()

	return Dashboard{
		Summary:   summarize(h, s, windowDays),
		Daily:     DailyScores(h, today, windowDays),
		Manager:   DailyScores(h, today, ManagerChartDays),
		Breakdown: breakdown(h, s, windowDays),
		Monthly:   RecentMonths(MonthlyAggregates(h), months),
	}
}

func summarize(h model.History, s *TrackerService, windowDays int) Summary {
	today := s.Today()
	return Summary{
		TodayKey:   model.DateKey(today),
		WindowDays: windowDays,
		Totals:     RangeTotals(h, today, windowDays),
		Streak:     Streak(h, today),
	}
}

func breakdown(h model.History, s *TrackerService, windowDays int) PrayerBreakdown {
	today := s.Today()
	return PrayerBreakdown{
		WindowDays:   windowDays,
		Congregation: PerPrayerCounts(h, today, windowDays, model.StatusCongregation),
		Individual:   PerPrayerCounts(h, today, windowDays, model.StatusIndividual),
		Qada:         PerPrayerCounts(h, today, windowDays, model.StatusQada),
	}
}
