package auth_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gpa-service/internal/auth"
	"gpa-service/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokens("test-secret", 60)

	var seenMatric string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matric, ok := session.Matric(r.Context())
		require.True(t, ok)
		seenMatric = matric
		w.WriteHeader(http.StatusOK)
	})
	protected := auth.Middleware(tokens, logger)(next)

	t.Run("NoCookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.Generate("230000001")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "230000001", seenMatric)
	})
}
