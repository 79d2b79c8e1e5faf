package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gpa-service/internal/gpa"
	"gpa-service/internal/graduation"
	"gpa-service/internal/httputil"
	"gpa-service/internal/metrics"
	"gpa-service/internal/registration"
	"gpa-service/internal/session"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	sessions *registration.Manager
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(sessions *registration.Manager, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/export/pdf", h.ExportPDF)
	router.Get("/export/card", h.ExportCard)
}

// snapshot takes the value copy the export renders from. Session changes
// after this point do not tear the artifact.
func (h *Handler) snapshot(r *http.Request) (Data, bool) {
	matric, ok := session.Matric(r.Context())
	if !ok {
		return Data{}, false
	}

	var courses []registration.Course
	if store, ok := h.sessions.Get(matric); ok {
		courses = store.Courses()
	}

	summary := gpa.Compute(courses)
	return Data{
		MatricNumber: matric,
		Courses:      courses,
		Summary:      summary,
		Verdict:      graduation.Evaluate(courses, summary),
		GeneratedAt:  time.Now(),
	}, true
}

// ExportPDF streams the tabular result sheet.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	data, ok := h.snapshot(r)
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.logger.InfoContext(r.Context(), "generating result sheet", "courses", len(data.Courses))
	pdf, err := BuildPDF(data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to generate result sheet", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to generate export")
		return
	}

	h.metrics.RecordExportGenerated(r.Context(), "pdf")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=gpa-result-%s.pdf", data.MatricNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// ExportCard streams the shareable PNG summary card.
func (h *Handler) ExportCard(w http.ResponseWriter, r *http.Request) {
	data, ok := h.snapshot(r)
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	card, err := BuildCard(data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to generate summary card", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to generate export")
		return
	}

	h.metrics.RecordExportGenerated(r.Context(), "card")

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=gpa-card-%s.png", data.MatricNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(card)
}
