package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anafloresm/ropita-backend/internal/platform/web"
)

type Handler struct {
	service     Service
	requireAuth func(http.Handler) http.Handler
}

func NewHandler(service Service, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, requireAuth: requireAuth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/auth/token", h.login)
	r.Post("/api/v1/auth/token/refresh", h.refresh)
	r.Post("/api/v1/auth/token/verify", h.verify)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/api/v1/me", h.me)
	})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		web.Error(w, http.StatusUnauthorized, err.Error())
	default:
		web.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		web.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, pair)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pair, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, pair)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := h.service.Verify(req.Token); err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"status": "valid"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if claims == nil {
		web.Error(w, http.StatusUnauthorized, ErrInvalidToken.Error())
		return
	}
	u, err := h.service.CurrentUser(r.Context(), claims)
	if err != nil {
		respondError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, u)
}
