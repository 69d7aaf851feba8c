package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Pages are served at /, /manage, and /help; form posts require a CSRF token.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	mux.HandleFunc("GET /sw.js", h.ServiceWorker)

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Tracker)
	mux.HandleFunc("GET /manage", h.Manage)
	mux.HandleFunc("GET /help", h.Help)

	// Form posts.
	mux.HandleFunc("POST /days", requireCSRF(h.SaveDay))
	mux.HandleFunc("POST /days/clear", requireCSRF(h.ClearDay))
	mux.HandleFunc("POST /manage/today", requireCSRF(h.AddToday))
	mux.HandleFunc("POST /manage/cell", requireCSRF(h.SetCell))
	mux.HandleFunc("POST /manage/import", requireCSRF(h.Import))
}
