// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/salahtracker/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/salahtracker/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/salahtracker/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/salahtracker/internal/application"
	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// flashMessages maps the ?flash= codes set by post-redirect-get handlers.
var flashMessages = map[string]vm.FlashViewModel{
	"saved":        {Message: "Saved!", Kind: "success"},
	"cleared":      {Message: "Cleared all prayers for this date.", Kind: "success"},
	"locked":       {Message: "Only today and the previous two days can be edited here.", Kind: "error"},
	"invalid":      {Message: "The submitted values were not valid.", Kind: "error"},
	"today-added":  {Message: "Added a record for today.", Kind: "success"},
	"today-exists": {Message: "Today already has a record.", Kind: "success"},
	"updated":      {Message: "Entry updated.", Kind: "success"},
}

const invalidImportMessage = "Invalid JSON file. Please check the format."

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	svc         *application.TrackerService
	summaryDays int
	help        HelpDocument
	logger      *slog.Logger
}

// NewHandler creates a Handler. summaryDays is the window of the progress
// panel, heatmap, and tracker charts.
func NewHandler(svc *application.TrackerService, summaryDays int, logger *slog.Logger) *Handler {
	if summaryDays <= 0 {
		summaryDays = application.DefaultSummaryDays
	}
	return &Handler{
		svc:         svc,
		summaryDays: summaryDays,
		help:        RenderHelp(helpMarkdown),
		logger:      logger,
	}
}

// Tracker renders the tracker page for ?date= (default today).
func (h *Handler) Tracker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	dateKey := q.Get("date")
	if !model.IsDateKey(dateKey) {
		dateKey = h.svc.TodayKey()
	}

	var prefill model.PrayerStatus
	if q.Get("prefill") == string(model.StatusCongregation) {
		prefill = model.StatusCongregation
	}

	day, err := h.svc.Day(ctx, dateKey)
	if err != nil {
		h.logger.Error("failed to load day", "date", dateKey, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	dash := h.svc.Dashboard(ctx, h.summaryDays, application.MonthlyChartMonths)

	page := vm.TrackerPageViewModel{
		Nav:         h.nav(w, r, "Tracker", "tracker"),
		Form:        toTrackerFormViewModel(day, h.svc.Today(), prefill),
		Progress:    toProgressViewModel(dash.Summary),
		Heatmap:     toHeatmap(dash.Daily),
		DailyChart:  toDailyChart("daily-chart", "Daily score (last "+strconv.Itoa(h.summaryDays)+" days)", dash.Daily, false),
		PrayerChart: toPrayerChart(dash.Breakdown),
	}

	h.render(w, r, http.StatusOK, page.Nav, pages.Tracker(page))
}

// SaveDay stores the tracker form for one date and redirects back to it.
// Prayers without a selected option are saved as missed.
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	dateKey := r.PostFormValue("date")

	statuses := make(map[string]model.PrayerStatus, model.PrayerCount)
	for _, p := range model.Prayers {
		if v, ok := r.PostForm[p.Key]; ok && len(v) > 0 {
			statuses[p.Key] = model.PrayerStatus(v[0])
		}
	}

	err := h.svc.SaveDay(r.Context(), dateKey, statuses)
	switch {
	case err == nil:
		redirectTracker(w, r, dateKey, "saved")
	case errors.Is(err, application.ErrNotEditable):
		redirectTracker(w, r, dateKey, "locked")
	case isValidationError(err):
		redirectTracker(w, r, dateKey, "invalid")
	default:
		h.fail(w, "save day", err)
	}
}

// ClearDay removes the record for one date and redirects back to it.
func (h *Handler) ClearDay(w http.ResponseWriter, r *http.Request) {
	dateKey := r.PostFormValue("date")

	err := h.svc.ClearDay(r.Context(), dateKey)
	switch {
	case err == nil:
		redirectTracker(w, r, dateKey, "cleared")
	case isValidationError(err):
		redirectTracker(w, r, "", "invalid")
	default:
		h.fail(w, "clear day", err)
	}
}

// Manage renders the data-manager page.
func (h *Handler) Manage(w http.ResponseWriter, r *http.Request) {
	nav := h.nav(w, r, "Data Manager", "manage")
	if n := r.URL.Query().Get("imported"); n != "" {
		if count, err := strconv.Atoi(n); err == nil && count >= 0 {
			nav.Flash = &vm.FlashViewModel{Message: "Imported " + strconv.Itoa(count) + " entries.", Kind: "success"}
		}
	}

	h.renderManage(w, r, http.StatusOK, nav, nil)
}

// AddToday creates an empty record for today if it does not exist yet.
func (h *Handler) AddToday(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.AddToday(r.Context())
	if err != nil {
		h.fail(w, "add today", err)
		return
	}

	flash := "today-exists"
	if created {
		flash = "today-added"
	}
	http.Redirect(w, r, "/manage?flash="+flash, http.StatusSeeOther)
}

// SetCell updates one prayer of one date from the data-manager table.
func (h *Handler) SetCell(w http.ResponseWriter, r *http.Request) {
	dateKey := r.PostFormValue("date")
	prayerKey := r.PostFormValue("prayer")
	status := model.PrayerStatus(r.PostFormValue("status"))

	err := h.svc.SetStatus(r.Context(), dateKey, prayerKey, status)
	switch {
	case err == nil:
		http.Redirect(w, r, "/manage?flash=updated#row-"+url.PathEscape(dateKey), http.StatusSeeOther)
	case isValidationError(err):
		http.Redirect(w, r, "/manage?flash=invalid", http.StatusSeeOther)
	default:
		h.fail(w, "set status", err)
	}
}

// Import merges an uploaded JSON file into the history. When the file
// overlaps existing dates the page asks for confirmation first; the
// confirmation form posts the payload back with overwrite=true.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overwrite := r.PostFormValue("overwrite") == "true"

	data, err := uploadedPayload(r)
	if err != nil {
		nav := h.nav(w, r, "Data Manager", "manage")
		nav.Flash = &vm.FlashViewModel{Message: "Choose a JSON file to import.", Kind: "error"}
		h.renderManage(w, r, http.StatusBadRequest, nav, nil)
		return
	}

	result, err := h.svc.Import(ctx, data, overwrite)
	if err != nil {
		if errors.Is(err, application.ErrInvalidImport) {
			nav := h.nav(w, r, "Data Manager", "manage")
			nav.Flash = &vm.FlashViewModel{Message: invalidImportMessage, Kind: "error"}
			h.renderManage(w, r, http.StatusBadRequest, nav, nil)
			return
		}
		h.fail(w, "import", err)
		return
	}

	if !result.Applied {
		confirm := &vm.ImportConfirmViewModel{
			Imported:  result.Imported,
			Conflicts: result.Conflicts,
			Payload:   string(data),
		}
		h.renderManage(w, r, http.StatusOK, h.nav(w, r, "Data Manager", "manage"), confirm)
		return
	}

	http.Redirect(w, r, "/manage?imported="+strconv.Itoa(result.Imported), http.StatusSeeOther)
}

// Help renders the help page.
func (h *Handler) Help(w http.ResponseWriter, r *http.Request) {
	nav := h.nav(w, r, "Help", "help")
	h.render(w, r, http.StatusOK, nav, pages.Help(toHelpPageViewModel(nav, h.help)))
}

// ServiceWorker serves the static-asset cache worker from the site root so
// its scope covers every page.
func (h *Handler) ServiceWorker(w http.ResponseWriter, _ *http.Request) {
	data, err := fs.ReadFile(StaticFS, "static/sw.js")
	if err != nil {
		h.fail(w, "read service worker", err)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}

func (h *Handler) renderManage(w http.ResponseWriter, r *http.Request, status int, nav vm.NavViewModel, confirm *vm.ImportConfirmViewModel) {
	ctx := r.Context()
	dash := h.svc.Dashboard(ctx, h.summaryDays, application.MonthlyChartMonths)

	page := vm.ManagePageViewModel{
		Nav:          nav,
		TodayKey:     dash.Summary.TodayKey,
		ManagerChart: toDailyChart("manager-chart", "Daily score (last "+strconv.Itoa(application.ManagerChartDays)+" days)", dash.Manager, true),
		MonthlyChart: toMonthlyChart(dash.Monthly),
		Rows:         toDataRows(h.svc.History(ctx)),
		Confirm:      confirm,
	}

	h.render(w, r, status, nav, pages.Manage(page))
}

// nav builds the page chrome, issuing a CSRF cookie when needed and
// resolving the ?flash= code.
func (h *Handler) nav(w http.ResponseWriter, r *http.Request, title, active string) vm.NavViewModel {
	nav := vm.NavViewModel{
		Title:     title,
		Active:    active,
		CSRFToken: csrfToken(w, r),
	}
	if f, ok := flashMessages[r.URL.Query().Get("flash")]; ok {
		nav.Flash = &f
	}
	return nav
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, nav vm.NavViewModel, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := templates.Layout(nav, body).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "page", nav.Active, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error("failed to "+op, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// uploadedPayload returns the import JSON: the echoed payload of a
// confirmation form, or else the uploaded file.
func uploadedPayload(r *http.Request) ([]byte, error) {
	if payload := r.PostFormValue("payload"); payload != "" {
		return []byte(payload), nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func redirectTracker(w http.ResponseWriter, r *http.Request, dateKey, flash string) {
	q := url.Values{}
	if dateKey != "" && model.IsDateKey(dateKey) {
		q.Set("date", dateKey)
	}
	q.Set("flash", flash)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func isValidationError(err error) bool {
	return errors.Is(err, model.ErrInvalidDateKey) ||
		errors.Is(err, model.ErrUnknownPrayer) ||
		errors.Is(err, model.ErrInvalidStatus)
}
