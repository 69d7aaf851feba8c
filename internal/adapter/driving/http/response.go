package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Today  string `json:"today"`
}

// DayResponse is the JSON representation of one tracked day. Prayers always
// holds all five prayer keys; an empty string means missed.
type DayResponse struct {
	Date     string            `json:"date"`
	Exists   bool              `json:"exists"`
	Prayers  map[string]string `json:"prayers"`
	Score    int               `json:"score"`
	MaxScore int               `json:"max_score"`
	Editable bool              `json:"editable"`
}

// SaveDayRequest is the JSON body for saving a whole day.
type SaveDayRequest struct {
	Prayers map[string]string `json:"prayers"`
}

// SetStatusRequest is the JSON body for setting one prayer's status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SummaryResponse is the progress panel over a window of recent days.
type SummaryResponse struct {
	Today      string `json:"today"`
	WindowDays int    `json:"window_days"`
	Completed  int    `json:"completed"`
	Possible   int    `json:"possible"`
	Percentage int    `json:"percentage"`
	Streak     int    `json:"streak"`
}

// DailyScoreResponse is one point of the daily score series.
type DailyScoreResponse struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

// PrayerCountsResponse holds the per-status counts for one prayer.
type PrayerCountsResponse struct {
	Prayer       string `json:"prayer"`
	Name         string `json:"name"`
	Congregation int    `json:"congregation"`
	Individual   int    `json:"individual"`
	Qada         int    `json:"qada"`
}

// PrayerBreakdownResponse is the per-prayer chart data over a window.
type PrayerBreakdownResponse struct {
	WindowDays int                    `json:"window_days"`
	Prayers    []PrayerCountsResponse `json:"prayers"`
}

// MonthResponse is one month of the monthly statistics chart.
type MonthResponse struct {
	Month           string `json:"month"`
	TotalRecorded   int    `json:"total_recorded"`
	Congregation    int    `json:"congregation"`
	Individual      int    `json:"individual"`
	Qada            int    `json:"qada"`
	CongregationPct int    `json:"congregation_pct"`
	IndividualPct   int    `json:"individual_pct"`
	QadaPct         int    `json:"qada_pct"`
}

// ImportResponse reports the outcome of an import request.
type ImportResponse struct {
	Imported  int      `json:"imported"`
	Conflicts []string `json:"conflicts"`
	Applied   bool     `json:"applied"`
}

// toDayResponse converts an application DayView to its JSON representation.
func toDayResponse(v application.DayView) DayResponse {
	prayers := make(map[string]string, model.PrayerCount)
	for _, p := range model.Prayers {
		prayers[p.Key] = string(v.Record.Status(p.Key))
	}

	return DayResponse{
		Date:     v.DateKey,
		Exists:   v.Exists,
		Prayers:  prayers,
		Score:    v.Score,
		MaxScore: model.MaxDayScore,
		Editable: v.Editable,
	}
}

// toSummaryResponse converts an application Summary to its JSON representation.
func toSummaryResponse(s application.Summary) SummaryResponse {
	return SummaryResponse{
		Today:      s.TodayKey,
		WindowDays: s.WindowDays,
		Completed:  s.Totals.Completed,
		Possible:   s.Totals.Possible,
		Percentage: s.Totals.Percentage,
		Streak:     s.Streak,
	}
}

func toDailyScoreResponses(series []model.DailyScore) []DailyScoreResponse {
	resp := make([]DailyScoreResponse, 0, len(series))
	for _, d := range series {
		resp = append(resp, DailyScoreResponse{Date: d.DateKey, Score: d.Score, Level: d.Level})
	}
	return resp
}

// toPrayerBreakdownResponse flattens the per-status maps into one row per
// prayer in prayer order.
func toPrayerBreakdownResponse(b application.PrayerBreakdown) PrayerBreakdownResponse {
	rows := make([]PrayerCountsResponse, 0, len(model.Prayers))
	for _, p := range model.Prayers {
		rows = append(rows, PrayerCountsResponse{
			Prayer:       p.Key,
			Name:         p.Name,
			Congregation: b.Congregation[p.Key],
			Individual:   b.Individual[p.Key],
			Qada:         b.Qada[p.Key],
		})
	}

	return PrayerBreakdownResponse{WindowDays: b.WindowDays, Prayers: rows}
}

func toMonthResponses(months []model.MonthAggregate) []MonthResponse {
	resp := make([]MonthResponse, 0, len(months))
	for _, m := range months {
		resp = append(resp, MonthResponse{
			Month:           m.Month,
			TotalRecorded:   m.TotalRecorded,
			Congregation:    m.Congregation,
			Individual:      m.Individual,
			Qada:            m.Qada,
			CongregationPct: m.CongregationPct(),
			IndividualPct:   m.IndividualPct(),
			QadaPct:         m.QadaPct(),
		})
	}
	return resp
}

func toImportResponse(r application.ImportResult) ImportResponse {
	conflicts := r.Conflicts
	if conflicts == nil {
		conflicts = []string{}
	}
	return ImportResponse{Imported: r.Imported, Conflicts: conflicts, Applied: r.Applied}
}
