package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	stowgatehttp "github.com/sagarc03/stowgate/http"
	"github.com/stretchr/testify/assert"
)

func assertHeaderPolicy(t *testing.T, h http.Header, origin string) {
	t.Helper()
	assert.Equal(t, origin, h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, x-admin-token", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
}

func TestHeaderPolicy_PassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("OK"))
	})

	wrapped := stowgatehttp.HeaderPolicy(stowgatehttp.HeaderConfig{AllowOrigin: "https://app.example.com"})(handler)

	req := httptest.NewRequest("GET", "/anything", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assertHeaderPolicy(t, rec.Header(), "https://app.example.com")
}

func TestHeaderPolicy_Options(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	wrapped := stowgatehttp.HeaderPolicy(stowgatehttp.HeaderConfig{AllowOrigin: "*"})(handler)

	req := httptest.NewRequest("OPTIONS", "/does/not/exist", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
	assertHeaderPolicy(t, rec.Header(), "*")
}

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
		secret string
		want   bool
	}{
		{name: "matching token", header: "s3cret", secret: "s3cret", want: true},
		{name: "wrong token", header: "other", secret: "s3cret", want: false},
		{name: "absent header", header: "", secret: "s3cret", want: false},
		{name: "no secret configured", header: "s3cret", secret: "", want: false},
		{name: "both empty", header: "", secret: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/uploads/prepare", nil)
			if tt.header != "" {
				req.Header.Set("x-admin-token", tt.header)
			}

			assert.Equal(t, tt.want, stowgatehttp.IsAuthorized(req, tt.secret))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := stowgatehttp.AdminOnly("s3cret")(handler)

	t.Run("rejects missing token", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/uploads/put?key=a", nil)
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"ok":false,"error":"unauthorized"}`, rec.Body.String())
	})

	t.Run("accepts matching token", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/api/uploads/put?key=a", nil)
		req.Header.Set("X-Admin-Token", "s3cret")
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecoverer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest("GET", "/api/ping", nil)
	rec := httptest.NewRecorder()

	stowgatehttp.Recoverer(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"internal error"}`, rec.Body.String())
}

func TestRequestLogger_PreservesResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("made"))
	})

	req := httptest.NewRequest("POST", "/x", nil)
	rec := httptest.NewRecorder()

	stowgatehttp.RequestLogger(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "made", rec.Body.String())
}
