package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/salahtracker/internal/domain/model"
)

// GetDay returns one day's record, score, and editability.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	h.writeDay(w, r, http.StatusOK, r.PathValue("date"), "get day")
}

// SaveDay replaces a whole day from a {"prayers": {...}} body. Prayers left
// out of the body are saved as missed. Dates outside the editable window
// are rejected with 403.
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	var req SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	statuses := make(map[string]model.PrayerStatus, len(req.Prayers))
	for key, status := range req.Prayers {
		statuses[key] = model.PrayerStatus(status)
	}

	if err := h.svc.SaveDay(r.Context(), date, statuses); err != nil {
		h.writeServiceError(w, "save day", err)
		return
	}

	h.writeDay(w, r, http.StatusOK, date, "save day")
}

// ClearDay removes a day's record entirely.
func (h *Handler) ClearDay(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearDay(r.Context(), r.PathValue("date")); err != nil {
		h.writeServiceError(w, "clear day", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetStatus sets one prayer's status on any date, creating the day if needed.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetStatus(r.Context(), date, r.PathValue("prayer"), model.PrayerStatus(req.Status)); err != nil {
		h.writeServiceError(w, "set status", err)
		return
	}

	h.writeDay(w, r, http.StatusOK, date, "set status")
}

// AddToday creates an all-missed record for today. It responds 201 when the
// record was created and 200 when today already existed.
func (h *Handler) AddToday(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.AddToday(r.Context())
	if err != nil {
		h.writeServiceError(w, "add today", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.writeDay(w, r, status, h.svc.TodayKey(), "add today")
}

func (h *Handler) writeDay(w http.ResponseWriter, r *http.Request, status int, date, op string) {
	view, err := h.svc.Day(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}
	writeJSON(w, status, toDayResponse(view))
}
