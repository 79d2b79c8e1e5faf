package registration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gpa-service/internal/catalog"
	"gpa-service/internal/metrics"
	"gpa-service/internal/registration"
	"gpa-service/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMatric = "230000001"

func newTestRouter(sessions *registration.Manager) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := registration.NewHandler(sessions, logger, metrics.NewMock())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithMatric(r.Context(), testMatric)))
		})
	})
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func addCourse(t *testing.T, router chi.Router, courseID, grade string) registration.Course {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/courses", registration.AddCourseRequest{
		CourseID: courseID,
		Grade:    grade,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var course registration.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	return course
}

func TestGetCatalog(t *testing.T) {
	router := newTestRouter(registration.NewManager())

	rec := doJSON(t, router, http.MethodGet, "/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp registration.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Courses, len(catalog.Courses()))
	require.Len(t, resp.Grades, 6)
	assert.Equal(t, catalog.GradeA, resp.Grades[0].Grade)
	assert.Equal(t, 5, resp.Grades[0].Point)

	compulsory := 0
	for _, c := range resp.Courses {
		if c.Compulsory {
			compulsory++
		}
	}
	assert.Equal(t, catalog.CompulsoryCount(), compulsory)
}

func TestAddCourse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())

		course := addCourse(t, router, "mit899", "B")
		assert.NotEmpty(t, course.ID)
		assert.Equal(t, 6, course.CreditUnit)
		assert.Equal(t, 4, course.GradePoint)
	})

	t.Run("DuplicateConflict", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())
		addCourse(t, router, "mit801", "A")

		rec := doJSON(t, router, http.MethodPost, "/courses", registration.AddCourseRequest{
			CourseID: "mit801",
			Grade:    "C",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())

		rec := doJSON(t, router, http.MethodPost, "/courses", registration.AddCourseRequest{
			CourseID: "mit999",
			Grade:    "A",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidGradeLetter", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())

		rec := doJSON(t, router, http.MethodPost, "/courses", registration.AddCourseRequest{
			CourseID: "mit801",
			Grade:    "G",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())

		req := httptest.NewRequest(http.MethodPost, "/courses", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCourses(t *testing.T) {
	router := newTestRouter(registration.NewManager())

	rec := doJSON(t, router, http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	addCourse(t, router, "mit801", "A")

	rec = doJSON(t, router, http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []registration.CourseView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "MIT 801", views[0].Code)
	assert.Equal(t, "Introduction to Information Technology", views[0].Name)
}

func TestUpdateGrade(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sessions := registration.NewManager()
		router := newTestRouter(sessions)
		course := addCourse(t, router, "mit801", "F")

		rec := doJSON(t, router, http.MethodPatch, "/courses/"+course.ID, registration.UpdateGradeRequest{Grade: "A"})
		require.Equal(t, http.StatusOK, rec.Code)

		store, ok := sessions.Get(testMatric)
		require.True(t, ok)
		assert.Equal(t, 5, store.Courses()[0].GradePoint)
	})

	t.Run("UnknownIdentityNoContent", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())

		rec := doJSON(t, router, http.MethodPatch, "/courses/no-such-id", registration.UpdateGradeRequest{Grade: "A"})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRemoveCourse(t *testing.T) {
	sessions := registration.NewManager()
	router := newTestRouter(sessions)
	course := addCourse(t, router, "mit801", "A")

	rec := doJSON(t, router, http.MethodDelete, "/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	store, ok := sessions.Get(testMatric)
	require.True(t, ok)
	assert.Equal(t, 0, store.Len())

	// Deleting the same identity again stays 204.
	rec = doJSON(t, router, http.MethodDelete, "/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetSummary(t *testing.T) {
	t.Run("EmptySession", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())

		rec := doJSON(t, router, http.MethodGet, "/summary", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp registration.SummaryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0.0, resp.GPA)
		assert.Equal(t, "Not Started", string(resp.Verdict.Status))
		assert.Equal(t, 54, resp.Requirements.UnitsRequired)
		assert.Equal(t, 13, resp.Requirements.CompulsoryTotal)
	})

	t.Run("ReflectsRegisteredCourses", func(t *testing.T) {
		router := newTestRouter(registration.NewManager())
		addCourse(t, router, "mit801", "A")
		addCourse(t, router, "mit802", "B")
		addCourse(t, router, "mit807", "F")

		rec := doJSON(t, router, http.MethodGet, "/summary", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp registration.SummaryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		// (3*5 + 3*4 + 3*0) / 9
		assert.InDelta(t, 3.0, resp.GPA, 1e-9)
		assert.Equal(t, 6, resp.TotalUnitsPassed)
		assert.Equal(t, 3, resp.Requirements.OutstandingUnits)
		assert.Equal(t, 2, resp.Requirements.CompulsoryPassed)
		assert.False(t, resp.Requirements.MeetsMinimum)
	})
}

func TestMissingSessionUnauthorized(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := registration.NewHandler(registration.NewManager(), logger, metrics.NewMock())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	rec := doJSON(t, router, http.MethodGet, "/courses", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
