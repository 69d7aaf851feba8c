package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// Upper bounds for the stats window query parameters.
const (
	maxWindowDays   = application.MaxWindowDays
	maxMonthlyLimit = 120
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	svc         *application.TrackerService
	summaryDays int
	logger      *slog.Logger
}

// NewHandler creates a Handler. summaryDays is the default window for the
// stats endpoints when no query parameter is given.
func NewHandler(svc *application.TrackerService, summaryDays int, logger *slog.Logger) *Handler {
	if summaryDays <= 0 {
		summaryDays = application.DefaultSummaryDays
	}
	return &Handler{
		svc:         svc,
		summaryDays: summaryDays,
		logger:      logger,
	}
}

// RegisterAPIRoutes registers all REST API routes on the given mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/history", h.GetHistory)

	mux.HandleFunc("GET /api/v1/days/{date}", h.GetDay)
	mux.HandleFunc("PUT /api/v1/days/{date}", h.SaveDay)
	mux.HandleFunc("DELETE /api/v1/days/{date}", h.ClearDay)
	mux.HandleFunc("PUT /api/v1/days/{date}/prayers/{prayer}", h.SetStatus)
	mux.HandleFunc("POST /api/v1/days/today", h.AddToday)

	mux.HandleFunc("GET /api/v1/stats/summary", h.GetSummary)
	mux.HandleFunc("GET /api/v1/stats/daily", h.GetDaily)
	mux.HandleFunc("GET /api/v1/stats/prayers", h.GetPrayerBreakdown)
	mux.HandleFunc("GET /api/v1/stats/monthly", h.GetMonthly)

	mux.HandleFunc("GET /api/v1/export/json", h.ExportJSON)
	mux.HandleFunc("GET /api/v1/export/csv", h.ExportCSV)
	mux.HandleFunc("POST /api/v1/import", h.Import)
}

// NewServeMux creates an http.Handler with the API routes, the /metrics
// endpoint when metrics is non-nil, and any extra routes, all wrapped with
// the standard middleware.
func NewServeMux(h *Handler, logger *slog.Logger, metrics *Metrics, extra ...func(*http.ServeMux)) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
	for _, register := range extra {
		register(mux)
	}
	return ApplyMiddleware(mux, logger, metrics)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
		Today:  h.svc.TodayKey(),
	})
}

// GetHistory returns the full history in its persisted JSON form.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.History(r.Context()))
}

// GetSummary returns completion totals over ?window= days and the streak.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	window, ok := queryInt(w, r, "window", h.summaryDays, maxWindowDays)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(h.svc.Summary(r.Context(), window)))
}

// GetDaily returns the score series for the last ?days= days, oldest first.
func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(w, r, "days", h.summaryDays, maxWindowDays)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDailyScoreResponses(h.svc.Daily(r.Context(), days)))
}

// GetPrayerBreakdown returns per-prayer status counts over the last ?days= days.
func (h *Handler) GetPrayerBreakdown(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(w, r, "days", h.summaryDays, maxWindowDays)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPrayerBreakdownResponse(h.svc.Breakdown(r.Context(), days)))
}

// GetMonthly returns up to ?limit= months of aggregates, chronological.
func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", application.MonthlyChartMonths, maxMonthlyLimit)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toMonthResponses(h.svc.Monthly(r.Context(), limit)))
}

// queryInt parses a positive integer query parameter bounded by upper. An
// absent parameter yields def. On a bad value a 400 is written and ok is false.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def, upper int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > upper {
		writeError(w, http.StatusBadRequest, "invalid "+name+": expected an integer between 1 and "+strconv.Itoa(upper))
		return 0, false
	}
	return v, true
}

// writeServiceError maps domain and application errors to HTTP statuses.
// Unrecognized errors are logged and reported as 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidDateKey),
		errors.Is(err, model.ErrUnknownPrayer),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidImport):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrNotEditable):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error("failed to "+op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
