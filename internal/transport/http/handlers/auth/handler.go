package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rhportal/internal/domain/auth"
	"rhportal/internal/transport/http/api"
	"rhportal/internal/transport/http/middleware"
	"rhportal/internal/transport/http/shared"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  auth.SubjectSummary `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request body", reqID)
		return
	}

	var v shared.Validator
	v.Require(req.Email, "email")
	v.Require(req.Password, "password")
	if !v.Valid() {
		v.Fail(w, reqID)
		return
	}

	token, user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
			return
		}
		slog.Error("login failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", reqID)
		return
	}

	api.Success(w, loginResponse{Token: token, User: user}, reqID)
}
