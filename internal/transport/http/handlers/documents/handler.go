package documents

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rhportal/internal/domain/document"
	"rhportal/internal/domain/employee"
	"rhportal/internal/platform/storage"
	"rhportal/internal/transport/http/api"
	"rhportal/internal/transport/http/middleware"
	"rhportal/internal/transport/http/shared"
)

type Handler struct {
	store *document.Store
	blobs *storage.Store
}

func NewHandler(store *document.Store, blobs *storage.Store) *Handler {
	return &Handler{store: store, blobs: blobs}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	return r
}

// create registers a medical certificate. Employees file against their own
// record; admins may file for anyone via the employeeId form field.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	targetID := actor.EmployeeID
	if raw := r.FormValue("employeeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId must be a positive integer", reqID)
			return
		}
		targetID = parsed
	}

	if !employee.CanAttach(actor, employee.KindCertificate, targetID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "certificates may only be filed on your own record", reqID)
		return
	}

	issuedOn, err := shared.ParseDate(r.FormValue("issuedOn"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "issuedOn must be a date (YYYY-MM-DD)", reqID)
		return
	}

	daysOff := 0
	if raw := r.FormValue("daysOff"); raw != "" {
		daysOff, err = strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "daysOff must be an integer", reqID)
			return
		}
	}

	var fileURL string
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		fileURL, err = h.blobs.Save(file, header, storage.FolderCertificates, targetID)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
			return
		}
	}

	cert, err := h.store.CreateCertificate(r.Context(), targetID, issuedOn, daysOff, r.FormValue("reason"), fileURL)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Created(w, cert, reqID)
}

// list scopes results by role: admins see every certificate (optionally
// narrowed by employeeId), employees only their own regardless of the filter.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	var targetID int64
	if actor.IsAdmin() {
		if raw := r.URL.Query().Get("employeeId"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId must be a positive integer", reqID)
				return
			}
			targetID = parsed
		}
	} else {
		targetID = actor.EmployeeID
	}

	certs, err := h.store.ListCertificates(r.Context(), targetID)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, certs, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, document.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	default:
		slog.Error("certificate operation failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
	}
}
