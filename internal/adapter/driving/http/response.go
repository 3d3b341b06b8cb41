package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chayanin/showcase/internal/domain/model"
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

// okResponse is the standard success marker for side-effect endpoints.
type okResponse struct {
	OK bool `json:"ok"`
}

// ProjectResponse is the JSON representation of a project. Tags and links
// are always arrays, optional strings are always present (empty when unset),
// matching what the client stores back verbatim.
type ProjectResponse struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ImageDataURL  string       `json:"imageDataUrl"`
	DateISO       string       `json:"dateISO"`
	Tags          []string     `json:"tags"`
	Links         []model.Link `json:"links"`
	MarketEnabled bool         `json:"marketEnabled"`
}

// ItemResponse is the JSON representation of a marketplace item. Price is
// null when the item has no price ("not for sale").
type ItemResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ImageDataURL  string   `json:"imageDataUrl"`
	DateISO       string   `json:"dateISO"`
	Price         *float64 `json:"price"`
	Stock         int      `json:"stock"`
	MarketEnabled bool     `json:"marketEnabled"`
}

// OrderResponse is the JSON representation of a recorded order.
type OrderResponse struct {
	ID        string `json:"id"`
	ItemID    string `json:"itemId"`
	Qty       int    `json:"qty"`
	CreatedAt string `json:"createdAt"`
}

// PlaceOrderResponse wraps a successful order placement. Amount is
// informational; payment is consummated out-of-band.
type PlaceOrderResponse struct {
	OK     bool          `json:"ok"`
	Order  OrderResponse `json:"order"`
	Amount float64       `json:"amount"`
}

// SessionResponse reports whether the current request carries a valid admin
// credential.
type SessionResponse struct {
	Admin bool `json:"admin"`
}

// UploadResponse carries the public URL of a stored upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status string `json:"status"`
}

// ProjectRequest is the JSON payload for creating or updating a project.
// MarketEnabled is a pointer so an absent field preserves the stored flag
// instead of silently resetting it.
type ProjectRequest struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ImageDataURL  string       `json:"imageDataUrl"`
	DateISO       string       `json:"dateISO"`
	Tags          []string     `json:"tags"`
	Links         []model.Link `json:"links"`
	MarketEnabled *bool        `json:"marketEnabled"`
}

// ItemRequest is the JSON payload for creating or updating an item.
type ItemRequest struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ImageDataURL  string   `json:"imageDataUrl"`
	DateISO       string   `json:"dateISO"`
	Price         *float64 `json:"price"`
	Stock         int      `json:"stock"`
	MarketEnabled *bool    `json:"marketEnabled"`
}

// MarketToggleRequest flips the marketplace flag on a project or item.
type MarketToggleRequest struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// PlaceOrderRequest is the checkout payload. Qty nil means "one".
type PlaceOrderRequest struct {
	ItemID string `json:"itemId"`
	Qty    *int   `json:"qty"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func toProjectResponse(p model.Project) ProjectResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	links := p.Links
	if links == nil {
		links = []model.Link{}
	}

	return ProjectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		ImageDataURL:  p.ImageURL,
		DateISO:       p.DateISO,
		Tags:          tags,
		Links:         links,
		MarketEnabled: p.MarketEnabled,
	}
}

func toItemResponse(it model.Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		ImageDataURL:  it.ImageURL,
		DateISO:       it.DateISO,
		Price:         it.Price,
		Stock:         it.Stock,
		MarketEnabled: it.MarketEnabled,
	}
}

func toOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		ItemID:    o.ItemID,
		Qty:       o.Qty,
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
