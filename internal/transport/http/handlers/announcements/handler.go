package announcements

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rhportal/internal/domain/announcement"
	"rhportal/internal/transport/http/api"
	"rhportal/internal/transport/http/middleware"
	"rhportal/internal/transport/http/shared"
)

type Handler struct {
	store *announcement.Store
}

func NewHandler(store *announcement.Store) *Handler {
	return &Handler{store: store}
}

// Routes: reading is open to every authenticated employee, publishing and
// retracting are admin-only.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/", h.create)
		admin.Delete("/{id}", h.delete)
	})
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	items, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("list announcements failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}
	api.Success(w, items, reqID)
}

type createRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request body", reqID)
		return
	}

	var v shared.Validator
	v.Require(req.Title, "title")
	v.Require(req.Body, "body")
	if !v.Valid() {
		v.Fail(w, reqID)
		return
	}

	item, err := h.store.Create(r.Context(), req.Title, req.Body)
	if err != nil {
		slog.Error("create announcement failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}
	api.Created(w, item, reqID)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "id must be a positive integer", reqID)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", reqID)
			return
		}
		slog.Error("delete announcement failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}
	api.Success(w, map[string]any{"deleted": id}, reqID)
}
