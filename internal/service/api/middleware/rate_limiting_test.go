package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiting(t *testing.T) {
	captureLogs(t)

	e := newEcho()
	e.Use(RateLimiting(0.001, 2))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	rec := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// 다른 IP는 별도의 버킷을 사용한다.
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)
}

func TestRateLimiting_InvalidArguments(t *testing.T) {
	assert.Panics(t, func() { RateLimiting(0, 1) })
	assert.Panics(t, func() { RateLimiting(1, 0) })
}

func TestIPRateLimiter_Eviction(t *testing.T) {
	l := newIPRateLimiter(1, 1)
	for i := 0; i < maxIPRateLimiters+10; i++ {
		l.getLimiter(fmt.Sprintf("ip-%d", i))
	}
	assert.LessOrEqual(t, len(l.limiters), maxIPRateLimiters)

	first := l.getLimiter("same")
	assert.Same(t, first, l.getLimiter("same"))
}
