package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
		wantError  string
	}{
		{name: "문자열 패닉", panicValue: "boom", wantError: "boom"},
		{name: "에러 패닉", panicValue: errors.New("db down"), wantError: "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			e := newEcho()
			e.Use(PanicRecovery())
			e.GET("/panic", func(c echo.Context) error {
				panic(tt.panicValue)
			})

			rec := httptest.NewRecorder()
			require.NotPanics(t, func() {
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
			})

			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			entry := parseLastLogEntry(t, buf)
			// ErrorHandler의 5xx 로그가 마지막이므로 전체 출력에서 패닉 로그를 확인한다.
			assert.Contains(t, buf.String(), "패닉 복구: 예기치 못한 오류가 발생하여 안전하게 복구했습니다")
			assert.Contains(t, buf.String(), tt.wantError)
			assert.Equal(t, "error", entry["level"])
		})
	}
}

func TestPanicRecovery_AbortHandler(t *testing.T) {
	e := newEcho()
	h := PanicRecovery()(func(c echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = h(c) })
}
