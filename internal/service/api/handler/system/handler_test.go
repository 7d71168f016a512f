package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/pkg/version"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/system"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOptions struct{}

func (failingOptions) GetOption(context.Context, string, any) error {
	return errors.New("connection refused")
}

func TestNewHandler_NilStore(t *testing.T) {
	assert.Panics(t, func() { NewHandler(nil, version.Info{}) })
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name       string
		options    OptionReader
		wantStatus string
	}{
		{name: "저장소 정상", options: store.NewMemoryStore(), wantStatus: constants.HealthStatusHealthy},
		{name: "저장소 오류", options: failingOptions{}, wantStatus: constants.HealthStatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			require.NoError(t, NewHandler(tt.options, version.Info{}).HealthCheckHandler(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantStatus, resp.Dependencies[constants.DependencyStore].Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))
		})
	}
}

func TestVersionHandler(t *testing.T) {
	info := version.Info{Version: "v1.0.0", Commit: "abc1234", BuildDate: "2026-01-01T00:00:00Z", GoVersion: "go1.24.0"}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/version", nil), rec)

	require.NoError(t, NewHandler(store.NewMemoryStore(), info).VersionHandler(c))

	var resp system.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, system.VersionResponse{
		Version:   "v1.0.0",
		Commit:    "abc1234",
		BuildDate: "2026-01-01T00:00:00Z",
		GoVersion: "go1.24.0",
	}, resp)
}
