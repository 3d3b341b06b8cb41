package httphandler

import (
	"errors"
	"net/http"

	"github.com/chayanin/showcase/internal/application"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// PlaceOrder records a purchase. A missing item or one not enabled for the
// marketplace looks the same to the caller (404); only insufficient stock
// gets its own message so the storefront can say "out of stock".
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	placed, err := h.orderSvc.PlaceOrder(r.Context(), req.ItemID, req.Qty)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidOrder):
			writeError(w, http.StatusBadRequest, "invalid payload")
		case errors.Is(err, driven.ErrItemNotAvailable):
			writeError(w, http.StatusNotFound, "item not available")
		case errors.Is(err, driven.ErrOutOfStock):
			writeError(w, http.StatusBadRequest, "out of stock")
		default:
			h.logger.Error("failed to place order", "item", req.ItemID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, PlaceOrderResponse{
		OK:     true,
		Order:  toOrderResponse(placed.Order),
		Amount: placed.Amount,
	})
}

// ListOrders returns all recorded orders, newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	writeJSON(w, http.StatusOK, resp)
}
