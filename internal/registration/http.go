package registration

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gpa-service/internal/catalog"
	"gpa-service/internal/gpa"
	"gpa-service/internal/graduation"
	"gpa-service/internal/httputil"
	"gpa-service/internal/metrics"
	"gpa-service/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// PlaceholderCourseName is rendered when a registered course's catalog
// identifier no longer resolves. The captured credit units keep the course
// computable; only the display name is lost.
const PlaceholderCourseName = "Unknown course"

type AddCourseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Grade    string `json:"grade" validate:"required,oneof=A B C D E F"`
}

type UpdateGradeRequest struct {
	Grade string `json:"grade" validate:"required,oneof=A B C D E F"`
}

// CourseView is a registered course with its catalog lookup resolved.
type CourseView struct {
	Course
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogResponse is the add-course form data: every catalog option plus the
// grade scale legend.
type CatalogResponse struct {
	Courses []CatalogOption `json:"courses"`
	Grades  []GradeOption   `json:"grades"`
}

type CatalogOption struct {
	catalog.Course
	Compulsory bool `json:"compulsory"`
}

type GradeOption struct {
	Grade catalog.Grade `json:"grade"`
	Point int           `json:"point"`
}

// SummaryResponse bundles everything the result dashboard shows: the
// computed summary, the graduation verdict and the requirements breakdown.
type SummaryResponse struct {
	gpa.Summary
	Verdict      graduation.Verdict `json:"graduationStatus"`
	Requirements Requirements       `json:"requirements"`
}

type Requirements struct {
	UnitsPassed      int  `json:"unitsPassed"`
	UnitsRequired    int  `json:"unitsRequired"`
	CompulsoryPassed int  `json:"compulsoryPassed"`
	CompulsoryTotal  int  `json:"compulsoryTotal"`
	OutstandingUnits int  `json:"outstandingUnits"`
	MeetsMinimum     bool `json:"meetsMinimumUnits"`
}

type Handler struct {
	sessions *Manager
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(sessions *Manager, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/catalog", h.GetCatalog)
	router.Get("/courses", h.GetCourses)
	router.Post("/courses", h.AddCourse)
	router.Patch("/courses/{id}", h.UpdateGrade)
	router.Delete("/courses/{id}", h.RemoveCourse)
	router.Get("/summary", h.GetSummary)
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	matric, ok := session.Matric(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return h.sessions.Open(matric), true
}

// GetCatalog returns the full course catalog and grade scale.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := CatalogResponse{}
	for _, c := range catalog.Courses() {
		resp.Courses = append(resp.Courses, CatalogOption{
			Course:     c,
			Compulsory: catalog.IsCompulsory(c.ID),
		})
	}
	for _, g := range catalog.Grades() {
		point, _ := catalog.Points(g)
		resp.Grades = append(resp.Grades, GradeOption{Grade: g, Point: point})
	}

	httputil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetCourses returns the session's registered courses in registration order.
func (h *Handler) GetCourses(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	views := []CourseView{}
	for _, c := range store.Courses() {
		view := CourseView{Course: c, Name: PlaceholderCourseName}
		if entry, ok := catalog.ByID(c.CourseID); ok {
			view.Code = entry.Code
			view.Name = entry.Name
		}
		views = append(views, view)
	}

	httputil.RespondWithJSON(w, http.StatusOK, views)
}

// AddCourse registers a catalog course for the session.
func (h *Handler) AddCourse(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var req AddCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "registering course", "course", req.CourseID, "grade", req.Grade)
	course, err := store.Add(req.CourseID, catalog.Grade(req.Grade))
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateCourse):
			httputil.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrUnknownCourse), errors.Is(err, ErrUnknownGrade):
			httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.ErrorContext(r.Context(), "failed to register course", "error", err)
			httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.metrics.RecordCourseRegistered(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, course)
}

// UpdateGrade changes the grade of a registered course. Updating an unknown
// identity is a no-op.
func (h *Handler) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	var req UpdateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := store.UpdateGrade(chi.URLParam(r, "id"), catalog.Grade(req.Grade))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.metrics.RecordGradeUpdated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveCourse drops a registered course. Idempotent.
func (h *Handler) RemoveCourse(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.Remove(chi.URLParam(r, "id"))
	h.metrics.RecordCourseRemoved(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// GetSummary recomputes the GPA summary and graduation verdict from the
// current session state.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	courses := store.Courses()
	summary := gpa.Compute(courses)
	verdict := graduation.Evaluate(courses, summary)
	facts := graduation.Derive(courses, summary)

	httputil.RespondWithJSON(w, http.StatusOK, SummaryResponse{
		Summary: summary,
		Verdict: verdict,
		Requirements: Requirements{
			UnitsPassed:      facts.UnitsPassed,
			UnitsRequired:    graduation.MinimumUnitsPassed,
			CompulsoryPassed: facts.CompulsoryPassed,
			CompulsoryTotal:  catalog.CompulsoryCount(),
			OutstandingUnits: facts.OutstandingUnits,
			MeetsMinimum:     facts.MeetsMinimumUnits,
		},
	})
}
