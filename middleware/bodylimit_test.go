package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/middleware"
)

func readAll(t *testing.T, readErr *error, body *[]byte) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*body, *readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()
		var err error
		var body []byte
		h := middleware.BodyLimitWithSize(10)(readAll(t, &err, &body))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

		require.NoError(t, err)
		assert.Equal(t, "0123456789", string(body))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("content length rejected", func(t *testing.T) {
		t.Parallel()
		var err error
		var body []byte
		h := middleware.BodyLimitWithSize(4)(readAll(t, &err, &body))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var resp map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", resp["code"])
		assert.Nil(t, body, "handler not called")
	})

	t.Run("oversized body while reading", func(t *testing.T) {
		t.Parallel()
		var err error
		var body []byte
		h := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize:                   4,
			DisableContentLengthCheck: true,
		})(readAll(t, &err, &body))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long")))
		assert.ErrorIs(t, err, codec.ErrBodyTooLarge)
	})

	t.Run("per content type", func(t *testing.T) {
		t.Parallel()
		var err error
		var body []byte
		h := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxSize:          100,
			ContentTypeLimit: map[string]int64{"application/yaml": 2},
		})(readAll(t, &err, &body))

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a: 1"))
		req.Header.Set("Content-Type", "application/yaml")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
