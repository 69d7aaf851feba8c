package model

import "math"

// RangeTotals summarizes prayer completion over a window of recent days.
type RangeTotals struct {
	Completed  int
	Possible   int
	Percentage int
}

// DailyScore is one day's score in a chart series.
type DailyScore struct {
	DateKey string
	Score   int
	Level   int
}

// MonthAggregate sums recorded statuses for one calendar month (YYYY-MM).
type MonthAggregate struct {
	Month         string
	TotalRecorded int
	Congregation  int
	Individual    int
	Qada          int
}

// CongregationPct returns the congregation share of recorded prayers, rounded.
func (m MonthAggregate) CongregationPct() int { return Percent(m.Congregation, m.TotalRecorded) }

// IndividualPct returns the individual share of recorded prayers, rounded.
func (m MonthAggregate) IndividualPct() int { return Percent(m.Individual, m.TotalRecorded) }

// QadaPct returns the make-up share of recorded prayers, rounded.
func (m MonthAggregate) QadaPct() int { return Percent(m.Qada, m.TotalRecorded) }

// ScoreLevel buckets a day score into four heat levels: 3 at 80% of the
// maximum or above, 2 at 50% or above, 1 for any positive score, 0 otherwise.
func ScoreLevel(score int) int {
	switch {
	case float64(score) >= float64(MaxDayScore)*0.8:
		return 3
	case float64(score) >= float64(MaxDayScore)*0.5:
		return 2
	case score > 0:
		return 1
	}
	return 0
}

// Percent returns round(part/whole*100), or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
