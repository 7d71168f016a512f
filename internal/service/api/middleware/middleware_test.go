package middleware

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
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

// parseLastLogEntry 버퍼에 기록된 마지막 JSON 로그를 파싱합니다.
func parseLastLogEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	output := strings.TrimSpace(buf.String())
	require.NotEmpty(t, output, "로그가 기록되지 않았습니다")

	lines := strings.Split(output, "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	return e
}

type fakeAuthenticator map[string]*auth.User

func (f fakeAuthenticator) Authenticate(id, password string) (*auth.User, error) {
	if u, ok := f[id]; ok && password == "secret" {
		return u, nil
	}
	return nil, auth.ErrInvalidCredentials
}
