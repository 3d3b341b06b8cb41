package web

import "net/http"

// RegisterRoutes registers the static routes on the provided mux: stored
// uploads under /uploads/ and the SPA everywhere the API does not claim.
// API routes are more specific patterns, so they win over "GET /".
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))
	mux.HandleFunc("GET /", h.ServeApp)
}
