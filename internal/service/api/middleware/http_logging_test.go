package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPLogger(t *testing.T) {
	buf := captureLogs(t)

	e := newEcho()
	e.Use(HTTPLogger())
	e.GET("/wp-admin/admin-ajax.php", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/wp-admin/admin-ajax.php?action=x&nonce=eyJhbGciOiJIUzI1NiJ9", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	entry := parseLastLogEntry(t, buf)
	assert.Equal(t, "HTTP 요청", entry["msg"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.Equal(t, "/wp-admin/admin-ajax.php", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, "0", entry["bytes_in"])
	assert.NotContains(t, entry["uri"], "eyJhbGciOiJIUzI1NiJ9")
	assert.Contains(t, entry["uri"], "action=x")
}

func TestHTTPLogger_RecordsErrorStatus(t *testing.T) {
	buf := captureLogs(t)

	e := newEcho()
	e.Use(HTTPLogger())
	e.GET("/missing", func(c echo.Context) error {
		return echo.ErrNotFound
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	entry := parseLastLogEntry(t, buf)
	assert.Equal(t, "HTTP 요청", entry["msg"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		contains []string
		excludes []string
	}{
		{
			name:     "민감 파라미터 없음",
			uri:      "/wp-admin/post.php?post=1&action=edit",
			contains: []string{"/wp-admin/post.php?post=1&action=edit"},
		},
		{
			name:     "api_secret 마스킹",
			uri:      "/x?api_secret=0123456789abcdef&tab=general",
			contains: []string{"api_secret=0123", "tab=general"},
			excludes: []string{"0123456789abcdef"},
		},
		{
			name:     "짧은 값은 전부 가린다",
			uri:      "/x?_wpnonce=abc",
			excludes: []string{"=abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskSensitiveQueryParams(tt.uri)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}
