package employees

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rhportal/internal/domain/auth"
	"rhportal/internal/domain/document"
	"rhportal/internal/domain/employee"
	"rhportal/internal/platform/storage"
	"rhportal/internal/transport/http/api"
	"rhportal/internal/transport/http/middleware"
	"rhportal/internal/transport/http/shared"
)

type Handler struct {
	store     *employee.Store
	documents *document.Store
	blobs     *storage.Store
}

func NewHandler(store *employee.Store, documents *document.Store, blobs *storage.Store) *Handler {
	return &Handler{store: store, documents: documents, blobs: blobs}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/record.pdf", h.recordPDF)
	r.Post("/{id}/photo", h.uploadPhoto)
	r.Get("/{id}/payslips", h.listPayslips)
	r.Post("/{id}/payslips", h.uploadPayslip)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())
	if !employee.CanList(actor) {
		api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", reqID)
		return
	}

	results, err := h.store.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		slog.Error("employee search failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}
	api.Success(w, results, reqID)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())
	if !employee.CanCreate(actor) {
		api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", reqID)
		return
	}

	var emp employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request body", reqID)
		return
	}

	var v shared.Validator
	v.Require(emp.FullName, "fullName")
	v.Require(emp.Email, "email")
	v.Require(emp.Password, "password")
	v.Require(emp.JobTitle, "jobTitle")
	v.Check(emp.Dependents >= 0, "dependents must not be negative")
	v.Check(emp.Salary == nil || *emp.Salary >= 0, "salary must not be negative")
	if emp.Status != "" && emp.Status != employee.StatusActive && emp.Status != employee.StatusInactive {
		v.Add("status must be active or inactive")
	}
	if !v.Valid() {
		v.Fail(w, reqID)
		return
	}

	if emp.Status == "" {
		emp.Status = employee.StatusActive
	}

	hash, err := auth.HashPassword(emp.Password)
	if err != nil {
		slog.Error("password hash failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}

	id, err := h.store.Create(r.Context(), emp, hash)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	created, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}
	if !employee.CanRead(actor, id) {
		api.Fail(w, http.StatusForbidden, "forbidden", "access to this record is not allowed", reqID)
		return
	}

	emp, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

// Me resolves the authenticated caller's own record without knowing its id.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	emp, err := h.store.Get(r.Context(), actor.EmployeeID)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var patch employee.Patch
	if err := decoder.Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request body: "+err.Error(), reqID)
		return
	}

	scoped, err := employee.ScopePatch(actor, id, patch)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	if scoped.IsEmpty() {
		api.Fail(w, http.StatusBadRequest, "validation_error", "no updatable field in request", reqID)
		return
	}
	if issues := scoped.Validate(); len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "request failed validation", issues, reqID)
		return
	}

	if err := h.store.Update(r.Context(), id, scoped); err != nil {
		h.fail(w, err, reqID)
		return
	}

	updated, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}
	if !employee.CanDelete(actor) {
		api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", reqID)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"deleted": id}, reqID)
}

func (h *Handler) recordPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", reqID)
		return
	}

	emp, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}

	doc, err := employee.RecordPDF(emp)
	if err != nil {
		slog.Error("record pdf failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="employee-%d.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}
	if !employee.CanAttach(actor, employee.KindPhoto, id) {
		api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", reqID)
		return
	}

	exists, err := h.store.Exists(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	if !exists {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "a file upload named 'file' is required", reqID)
		return
	}
	defer file.Close()

	url, err := h.blobs.Save(file, header, storage.FolderPhotos, id)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
		return
	}

	// Replacing the URL replaces the photo; the previous blob is unreferenced.
	if err := h.store.UpdatePhotoURL(r.Context(), id, url); err != nil {
		h.fail(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"photoUrl": url}, reqID)
}

func (h *Handler) listPayslips(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}
	if !employee.CanRead(actor, id) {
		api.Fail(w, http.StatusForbidden, "forbidden", "access to this record is not allowed", reqID)
		return
	}

	slips, err := h.documents.ListPayslips(r.Context(), id)
	if err != nil {
		slog.Error("list payslips failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}
	api.Success(w, slips, reqID)
}

func (h *Handler) uploadPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetUser(r.Context())

	id, ok := h.pathID(w, r, reqID)
	if !ok {
		return
	}
	if !employee.CanAttach(actor, employee.KindPayslip, id) {
		api.Fail(w, http.StatusForbidden, "forbidden", "administrator role required", reqID)
		return
	}

	// Resolve the employee before touching disk so a bad id cannot leave an
	// orphaned blob behind.
	exists, err := h.store.Exists(r.Context(), id)
	if err != nil {
		h.fail(w, err, reqID)
		return
	}
	if !exists {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "a file upload named 'file' is required", reqID)
		return
	}
	defer file.Close()

	url, err := h.blobs.Save(file, header, storage.FolderPayslips, id)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
		return
	}

	slip, err := h.documents.CreatePayslip(r.Context(), id, r.FormValue("period"), url)
	if err != nil {
		h.failDocument(w, err, reqID)
		return
	}
	api.Created(w, slip, reqID)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, reqID string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "id must be a positive integer", reqID)
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employee.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "duplicate", "email or national id already registered", reqID)
	case errors.Is(err, employee.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "access to this record is not allowed", reqID)
	case errors.Is(err, employee.ErrEmptyPatch):
		api.Fail(w, http.StatusBadRequest, "validation_error", "no updatable field in request", reqID)
	default:
		slog.Error("employee operation failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
	}
}

func (h *Handler) failDocument(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, document.ErrMissingPeriod), errors.Is(err, document.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
	case errors.Is(err, document.ErrDuplicatePeriod):
		api.Fail(w, http.StatusConflict, "duplicate", err.Error(), reqID)
	case errors.Is(err, document.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	default:
		slog.Error("payslip operation failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
	}
}
