package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/response"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs 테스트 동안 전역 로거 출력을 JSON으로 캡처합니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	buf := new(bytes.Buffer)
	out, formatter, level := logger.Out, logger.Formatter, logger.Level

	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		logger.SetOutput(out)
		logger.SetFormatter(formatter)
		logger.SetLevel(level)
	})
	return buf
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		err           error
		wantStatus    int
		wantMessage   string
		wantLogLevel  string
		wantEmptyBody bool
	}{
		{
			name:         "404 기본 메시지",
			method:       http.MethodGet,
			err:          echo.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantMessage:  constants.ErrMsgNotFound,
			wantLogLevel: "warning",
		},
		{
			name:         "HTTPError 사용자 메시지 유지",
			method:       http.MethodPost,
			err:          NewBadRequestError("폼 ID가 필요합니다"),
			wantStatus:   http.StatusBadRequest,
			wantMessage:  "폼 ID가 필요합니다",
			wantLogLevel: "warning",
		},
		{
			name:         "AppError InvalidInput",
			method:       http.MethodPost,
			err:          apperrors.New(apperrors.InvalidInput, "내부 메시지"),
			wantStatus:   http.StatusBadRequest,
			wantMessage:  constants.ErrMsgBadRequest,
			wantLogLevel: "warning",
		},
		{
			name:         "AppError Forbidden",
			method:       http.MethodGet,
			err:          apperrors.New(apperrors.Forbidden, "nonce"),
			wantStatus:   http.StatusForbidden,
			wantMessage:  constants.ErrMsgForbidden,
			wantLogLevel: "warning",
		},
		{
			name:         "AppError Unavailable",
			method:       http.MethodGet,
			err:          apperrors.New(apperrors.Unavailable, "kit down"),
			wantStatus:   http.StatusServiceUnavailable,
			wantMessage:  constants.ErrMsgServiceUnavailable,
			wantLogLevel: "error",
		},
		{
			name:         "일반 에러는 500",
			method:       http.MethodGet,
			err:          errors.New("boom"),
			wantStatus:   http.StatusInternalServerError,
			wantMessage:  constants.ErrMsgInternalServer,
			wantLogLevel: "error",
		},
		{
			name:          "HEAD 요청은 본문 없음",
			method:        http.MethodHead,
			err:           echo.ErrNotFound,
			wantStatus:    http.StatusNotFound,
			wantLogLevel:  "warning",
			wantEmptyBody: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			e := echo.New()
			req := httptest.NewRequest(tt.method, "/wp-admin/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			auth.SetUser(c, &auth.User{ID: "admin"})

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantEmptyBody {
				assert.Empty(t, rec.Body.String())
			} else {
				var resp response.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantStatus, resp.ResultCode)
				assert.Equal(t, tt.wantMessage, resp.Message)
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Equal(t, tt.wantLogLevel, entry["level"])
			assert.Equal(t, "admin", entry["user_id"])
		})
	}
}

func TestErrorHandler_Committed(t *testing.T) {
	captureLogs(t)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	ErrorHandler(errors.New("late"), c)
	assert.Equal(t, "partial", rec.Body.String())
}
