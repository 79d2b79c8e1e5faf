package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gpa-service/internal/auth"
	"gpa-service/internal/catalog"
	"gpa-service/internal/metrics"
	"gpa-service/internal/registration"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRestorer replays a fixed snapshot into any fresh session.
type stubRestorer struct {
	courses []registration.Course
	calls   int
}

func (s *stubRestorer) RestoreLatest(_ context.Context, _ string, store *registration.Store) bool {
	s.calls++
	if len(s.courses) == 0 {
		return false
	}
	store.ReplaceAll(s.courses)
	return true
}

func newAuthRouter(sessions *registration.Manager, restorer auth.SessionRestorer) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokens("test-secret", 60)
	handler := auth.NewHandler(tokens, sessions, restorer, logger, metrics.NewMock())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func login(t *testing.T, router chi.Router, matric string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(auth.LoginRequest{MatricNumber: matric})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLogin(t *testing.T) {
	t.Run("StartsSessionAndSetsCookie", func(t *testing.T) {
		sessions := registration.NewManager()
		router := newAuthRouter(sessions, &stubRestorer{})

		rec := login(t, router, "230000001")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp auth.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "230000001", resp.MatricNumber)
		assert.False(t, resp.Restored)

		cookie := sessionCookie(t, rec)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		_, ok := sessions.Get("230000001")
		assert.True(t, ok)
	})

	t.Run("TrimsSurroundingWhitespace", func(t *testing.T) {
		router := newAuthRouter(registration.NewManager(), &stubRestorer{})

		rec := login(t, router, "  230000001  ")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp auth.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "230000001", resp.MatricNumber)
	})

	t.Run("RejectsMalformedMatric", func(t *testing.T) {
		router := newAuthRouter(registration.NewManager(), &stubRestorer{})

		for _, bad := range []string{"12345", "abcdefghi", "12345678901"} {
			rec := login(t, router, bad)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("RejectsMissingMatric", func(t *testing.T) {
		router := newAuthRouter(registration.NewManager(), &stubRestorer{})

		rec := login(t, router, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RestoresLatestSnapshotIntoFreshSession", func(t *testing.T) {
		sessions := registration.NewManager()
		restorer := &stubRestorer{courses: []registration.Course{
			{ID: "a", CourseID: "mit801", CreditUnit: 3, Grade: catalog.GradeA, GradePoint: 5},
		}}
		router := newAuthRouter(sessions, restorer)

		rec := login(t, router, "230000001")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp auth.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Restored)

		store, ok := sessions.Get("230000001")
		require.True(t, ok)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("PopulatedSessionWinsOverStorage", func(t *testing.T) {
		sessions := registration.NewManager()
		restorer := &stubRestorer{courses: []registration.Course{
			{ID: "a", CourseID: "mit801", CreditUnit: 3, Grade: catalog.GradeA, GradePoint: 5},
		}}
		router := newAuthRouter(sessions, restorer)

		_, err := sessions.Open("230000001").Add("mit899", catalog.GradeB)
		require.NoError(t, err)

		rec := login(t, router, "230000001")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp auth.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Restored)
		assert.Equal(t, 0, restorer.calls)
	})
}

func TestLogout(t *testing.T) {
	sessions := registration.NewManager()
	router := newAuthRouter(sessions, &stubRestorer{})

	rec := login(t, router, "230000001")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := sessions.Get("230000001")
	assert.False(t, ok)

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestLogoutWithoutCookieSucceeds(t *testing.T) {
	router := newAuthRouter(registration.NewManager(), &stubRestorer{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
