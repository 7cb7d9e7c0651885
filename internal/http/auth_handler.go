package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/OgheneDev/technest-frontend-sub001/internal/backend"
	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

// AuthHandler is the single writer of session state: login, register,
// password rotation, logout and account deletion all move the token cookie
// and the persisted session together.
type AuthHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	timeout  time.Duration
}

func NewAuthHandler(client *backend.Client, sessions *session.Manager, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		backend:  client,
		sessions: sessions,
		timeout:  timeout,
	}
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequestDTO struct {
	Email string `json:"email"`
}

type ResetPasswordRequestDTO struct {
	Password string `json:"password"`
}

type UpdatePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, email and password are required")
		return
	}

	if err := h.backend.Register(ctx, backend.RegisterRequest(req)); err != nil {
		handleBackendError(w, err)
		return
	}

	// No session yet: the UI sends the user to the login page.
	respondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	token, err := h.backend.Login(ctx, req.Email, req.Password)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	if err := h.sessions.SetToken(ctx, w, token); err != nil {
		log.Error().Err(err).Msg("persist session after login")
		respondError(w, http.StatusInternalServerError, "session_error", "could not establish session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if err := h.sessions.RemoveToken(ctx, w, token); err != nil {
		log.Error().Err(err).Msg("remove session on logout")
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ForgotPasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	if err := h.backend.ForgotPassword(ctx, req.Email); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resetToken := chi.URLParam(r, "resetToken")
	if resetToken == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "reset token is required")
		return
	}

	var req ResetPasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "password is required")
		return
	}

	if err := h.backend.ResetPassword(ctx, resetToken, req.Password); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	user, err := h.backend.Me(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdatePassword rotates the session token: the backend issues a fresh one
// and the old session record is dropped in the same request.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req UpdatePasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "current and new password are required")
		return
	}

	newToken, err := h.backend.UpdatePassword(ctx, token, req.CurrentPassword, req.NewPassword)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	if err := h.sessions.RotateToken(ctx, w, token, newToken); err != nil {
		log.Error().Err(err).Msg("rotate session after password change")
		respondError(w, http.StatusInternalServerError, "session_error", "could not rotate session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateDetails forwards the multipart profile form (fields plus optional
// photo) to the backend.
func (h *AuthHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	fields := make(map[string]string)
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	var photoName string
	var photo io.Reader
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photoName = header.Filename
		photo = file
	}

	user, err := h.backend.UpdateDetails(ctx, token, fields, photoName, photo)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.backend.DeleteAccount(ctx, token); err != nil {
		handleBackendError(w, err)
		return
	}

	if err := h.sessions.RemoveToken(ctx, w, token); err != nil {
		log.Error().Err(err).Msg("remove session after account deletion")
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
