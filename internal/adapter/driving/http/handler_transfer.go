package httphandler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
)

// maxImportBytes bounds the size of an import request body.
const maxImportBytes = 10 << 20

// ExportJSON downloads the full history as indented JSON.
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.svc.ExportJSON(r.Context())
	if err != nil {
		h.writeServiceError(w, "export json", err)
		return
	}
	writeDownload(w, "application/json; charset=utf-8", filename, data)
}

// ExportCSV downloads the full history as CSV, newest date first.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, filename := h.svc.ExportCSV(r.Context())
	writeDownload(w, "text/csv; charset=utf-8", filename, data)
}

// Import merges a JSON history from the request body. Without
// ?overwrite=true an import that overlaps existing dates is rejected with
// 409 and the conflicting dates; nothing is written in that case.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	overwrite := false
	if raw := r.URL.Query().Get("overwrite"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid overwrite: expected a boolean")
			return
		}
		overwrite = v
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "import file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Import(r.Context(), data, overwrite)
	if err != nil {
		h.writeServiceError(w, "import", err)
		return
	}

	status := http.StatusOK
	if !result.Applied {
		status = http.StatusConflict
	}
	writeJSON(w, status, toImportResponse(result))
}

func writeDownload(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
