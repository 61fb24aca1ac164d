package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rhportal/internal/domain/reports"
	"rhportal/internal/transport/http/api"
	"rhportal/internal/transport/http/middleware"
)

type Handler struct {
	store *reports.Store
}

func NewHandler(store *reports.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireAdmin)
	r.Get("/", h.dashboard)
	return r
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	data, err := h.store.BuildDashboard(r.Context())
	if err != nil {
		slog.Error("dashboard build failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}
	api.Success(w, data, reqID)
}
