// Package httphandler is the HTTP driving adapter that serves the REST API.
package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chayanin/showcase/internal/application"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// maxBodyBytes caps JSON and upload request bodies at 25 MB; image data URLs
// embedded in catalog payloads can be large.
const maxBodyBytes = 25 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	projects  driven.ProjectStore
	items     driven.ItemStore
	orders    driven.OrderStore
	uploads   driven.UploadStore
	orderSvc  *application.OrderService
	auth      *application.AuthService
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	projects driven.ProjectStore,
	items driven.ItemStore,
	orders driven.OrderStore,
	uploads driven.UploadStore,
	orderSvc *application.OrderService,
	auth *application.AuthService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		projects:  projects,
		items:     items,
		orders:    orders,
		uploads:   uploads,
		orderSvc:  orderSvc,
		auth:      auth,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all API routes registered and
// wrapped with middleware. Static routes are registered separately by the
// composition root; see RegisterAPIRoutes.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// RegisterAPIRoutes registers all REST API routes on the provided mux.
// Mutating catalog routes and the upload route go through the admin gate.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/projects", h.ListProjects)
	mux.HandleFunc("POST /api/projects", h.requireAdmin(h.CreateProject))
	mux.HandleFunc("PUT /api/projects/{id}", h.requireAdmin(h.UpdateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", h.requireAdmin(h.DeleteProject))

	mux.HandleFunc("GET /api/items", h.ListItems)
	mux.HandleFunc("POST /api/items", h.requireAdmin(h.CreateItem))
	mux.HandleFunc("PUT /api/items/{id}", h.requireAdmin(h.UpdateItem))
	mux.HandleFunc("DELETE /api/items/{id}", h.requireAdmin(h.DeleteItem))

	mux.HandleFunc("POST /api/market/toggle", h.requireAdmin(h.ToggleMarket))

	mux.HandleFunc("POST /api/orders", h.PlaceOrder)
	mux.HandleFunc("GET /api/orders", h.requireAdmin(h.ListOrders))

	mux.HandleFunc("POST /api/admin/login", h.Login)
	mux.HandleFunc("POST /api/admin/logout", h.Logout)
	mux.HandleFunc("GET /api/admin/me", h.Session)

	mux.HandleFunc("POST /api/upload", h.requireAdmin(h.Upload))

	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// ApplyMiddleware wraps a handler with metrics, logging, and recovery.
// Recovery is innermost so panics are caught before logging and metrics.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = metricsMiddleware(wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
