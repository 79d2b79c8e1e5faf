package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gpa-service/internal/httputil"
	"gpa-service/internal/metrics"
	"gpa-service/internal/registration"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// LoginRequest is the request body for sign-in
type LoginRequest struct {
	MatricNumber string `json:"matricNumber" validate:"required"`
}

// LoginResponse reports the session identity and whether a saved snapshot
// was restored into the session.
type LoginResponse struct {
	MatricNumber string `json:"matricNumber"`
	Restored     bool   `json:"restored"`
}

// SessionRestorer loads the most recent saved snapshot into a fresh session
// store. Implemented by the result service.
type SessionRestorer interface {
	RestoreLatest(ctx context.Context, matric string, store *registration.Store) bool
}

type Handler struct {
	tokens    *Tokens
	sessions  *registration.Manager
	restorer  SessionRestorer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	validator *validator.Validate
}

func NewHandler(tokens *Tokens, sessions *registration.Manager, restorer SessionRestorer, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		tokens:    tokens,
		sessions:  sessions,
		restorer:  restorer,
		logger:    logger,
		metrics:   metrics,
		validator: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/login", h.Login)
	router.Post("/auth/logout", h.Logout)
}

// Login starts (or resumes) a session for a matric number. There is no
// password: the 9-digit format check is the whole identity story.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("validation failed", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	matric := strings.TrimSpace(req.MatricNumber)
	if err := ValidateMatric(matric); err != nil {
		h.logger.Warn("rejected matric number")
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	store := h.sessions.Open(matric)

	// Restore the most recent snapshot into a fresh session only; an
	// already-populated session wins over storage.
	restored := false
	if store.Len() == 0 && h.restorer != nil {
		restored = h.restorer.RestoreLatest(r.Context(), matric, store)
	}
	if restored {
		h.metrics.RecordResultRestored(r.Context())
	}

	token, err := h.tokens.Generate(matric)
	if err != nil {
		h.logger.Error("failed to generate session token", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("student signed in", "restored", restored)

	SetSessionCookie(w, token, int(h.tokens.TTL()/time.Second))
	httputil.RespondWithJSON(w, http.StatusOK, LoginResponse{
		MatricNumber: matric,
		Restored:     restored,
	})
}

// Logout tears the session down and clears the cookie. Always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil {
		if claims, err := h.tokens.Validate(cookie.Value); err == nil {
			h.sessions.Close(claims.MatricNumber)
		}
	}

	ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
