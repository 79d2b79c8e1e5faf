package result

import (
	"errors"
	"log/slog"
	"net/http"

	"gpa-service/internal/auth"
	"gpa-service/internal/httputil"
	"gpa-service/internal/metrics"
	"gpa-service/internal/registration"
	"gpa-service/internal/session"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service  *Service
	sessions *registration.Manager
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service *Service, sessions *registration.Manager, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/results", h.SaveResult)
	router.Get("/results", h.ListResults)
}

// SaveResult snapshots the current session under the signed-in matric number.
func (h *Handler) SaveResult(w http.ResponseWriter, r *http.Request) {
	matric, ok := session.Matric(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var courses []registration.Course
	if store, ok := h.sessions.Get(matric); ok {
		courses = store.Courses()
	}

	h.logger.InfoContext(r.Context(), "saving result", "courses", len(courses))
	saved, err := h.service.Save(r.Context(), matric, courses)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidMatric), errors.Is(err, ErrNoCourses):
			httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			// Persistence being down is not fatal for the session; the
			// client may retry the save later.
			h.logger.ErrorContext(r.Context(), "failed to save result", "error", err)
			httputil.RespondWithError(w, http.StatusServiceUnavailable, "result storage unavailable")
		}
		return
	}

	h.metrics.RecordResultSaved(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, saved)
}

// ListResults returns the snapshot history for the signed-in student.
func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	matric, ok := session.Matric(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	results, err := h.service.History(r.Context(), matric)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list results", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if results == nil {
		results = []Result{}
	}

	httputil.RespondWithJSON(w, http.StatusOK, results)
}
