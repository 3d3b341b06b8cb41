package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
)

// decodeJSON decodes a capped request body into v, writing a 400 on failure.
// It reports whether decoding succeeded.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// ListProjects returns all projects, newest first.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateProject stores a new project.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.ID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "id and title are required")
		return
	}

	p := h.projectFromRequest(req)

	if err := h.projects.Create(r.Context(), p); err != nil {
		if errors.Is(err, driven.ErrProjectExists) {
			writeError(w, http.StatusConflict, "project already exists")
			return
		}
		h.logger.Error("failed to create project", "id", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(p))
}

// UpdateProject replaces a stored project. An absent marketEnabled field
// preserves the stored flag rather than resetting it.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	req.ID = id

	marketEnabled := false
	if req.MarketEnabled == nil {
		existing, err := h.projects.GetByID(r.Context(), id)
		if err != nil {
			h.logger.Error("failed to load project", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if existing == nil {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		marketEnabled = existing.MarketEnabled
		req.MarketEnabled = &marketEnabled
	}

	p := h.projectFromRequest(req)

	if err := h.projects.Update(r.Context(), p); err != nil {
		if errors.Is(err, driven.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("failed to update project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.projects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("failed to delete project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// ListItems returns all marketplace items, newest first.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toItemResponse(it))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateItem stores a new marketplace item.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.ID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "id and title are required")
		return
	}
	if err := validateItemRequest(req); err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	it := h.itemFromRequest(req)

	if err := h.items.Create(r.Context(), it); err != nil {
		if errors.Is(err, driven.ErrItemExists) {
			writeError(w, http.StatusConflict, "item already exists")
			return
		}
		h.logger.Error("failed to create item", "id", it.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

// UpdateItem replaces a stored item. An absent marketEnabled field preserves
// the stored flag rather than resetting it.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err := validateItemRequest(req); err != "" {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.ID = id

	marketEnabled := false
	if req.MarketEnabled == nil {
		existing, err := h.items.GetByID(r.Context(), id)
		if err != nil {
			h.logger.Error("failed to load item", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if existing == nil {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		marketEnabled = existing.MarketEnabled
		req.MarketEnabled = &marketEnabled
	}

	it := h.itemFromRequest(req)

	if err := h.items.Update(r.Context(), it); err != nil {
		if errors.Is(err, driven.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("failed to update item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

// DeleteItem removes an item. Existing orders for the item are kept; they
// are an audit trail, not a reference.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.items.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("failed to delete item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// ToggleMarket flips the marketplace flag on a project or an item.
func (h *Handler) ToggleMarket(w http.ResponseWriter, r *http.Request) {
	var req MarketToggleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	switch req.Type {
	case "project":
		p, err := h.projects.SetMarketEnabled(r.Context(), req.ID, req.Enabled)
		if err != nil {
			if errors.Is(err, driven.ErrProjectNotFound) {
				writeError(w, http.StatusNotFound, "project not found")
				return
			}
			h.logger.Error("failed to toggle project", "id", req.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, toProjectResponse(*p))

	case "item":
		it, err := h.items.SetMarketEnabled(r.Context(), req.ID, req.Enabled)
		if err != nil {
			if errors.Is(err, driven.ErrItemNotFound) {
				writeError(w, http.StatusNotFound, "item not found")
				return
			}
			h.logger.Error("failed to toggle item", "id", req.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(*it))

	default:
		writeError(w, http.StatusBadRequest, "type must be project or item")
	}
}

// projectFromRequest maps a wire payload onto the domain model, sanitizing
// every admin-supplied text field. Image data URLs are stored verbatim.
func (h *Handler) projectFromRequest(req ProjectRequest) model.Project {
	tags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tags = append(tags, h.sanitizer.Sanitize(tag))
	}

	links := make([]model.Link, 0, len(req.Links))
	for _, link := range req.Links {
		links = append(links, model.Link{
			Label: h.sanitizer.Sanitize(link.Label),
			URL:   link.URL,
		})
	}

	marketEnabled := false
	if req.MarketEnabled != nil {
		marketEnabled = *req.MarketEnabled
	}

	return model.Project{
		ID:            req.ID,
		Title:         h.sanitizer.Sanitize(req.Title),
		Description:   h.sanitizer.Sanitize(req.Description),
		ImageURL:      req.ImageDataURL,
		DateISO:       req.DateISO,
		Tags:          tags,
		Links:         links,
		MarketEnabled: marketEnabled,
	}
}

// validateItemRequest returns an error message for out-of-range numeric
// fields, or "" when the payload is acceptable. Price is nullable ("not for
// sale") but never negative.
func validateItemRequest(req ItemRequest) string {
	if req.Stock < 0 {
		return "stock must not be negative"
	}
	if req.Price != nil && *req.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

func (h *Handler) itemFromRequest(req ItemRequest) model.Item {
	marketEnabled := false
	if req.MarketEnabled != nil {
		marketEnabled = *req.MarketEnabled
	}

	return model.Item{
		ID:            req.ID,
		Title:         h.sanitizer.Sanitize(req.Title),
		Description:   h.sanitizer.Sanitize(req.Description),
		ImageURL:      req.ImageDataURL,
		DateISO:       req.DateISO,
		Price:         req.Price,
		Stock:         req.Stock,
		MarketEnabled: marketEnabled,
	}
}
