// Package system 헬스체크, 버전 정보 등 인증이 필요 없는 시스템 엔드포인트를 처리합니다.
package system

import (
	"context"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/pkg/version"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/system"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// healthProbeOption 저장소 응답 확인에 사용하는 옵션 이름. 존재하지 않아도 조회가 성공하면(NotFound) 정상입니다.
const healthProbeOption = "convertkit_admin_health_probe"

// OptionReader 헬스체크 대상 저장소
type OptionReader interface {
	GetOption(ctx context.Context, name string, v any) error
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	options OptionReader

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(options OptionReader, buildInfo version.Info) *Handler {
	if options == nil {
		panic("system.NewHandler: 저장소는 필수입니다")
	}

	return &Handler{
		options:         options,
		buildInfo:       buildInfo,
		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 저장소의 상태를 확인합니다.
// @Description 인증 없이 호출 가능하며, 모니터링 시스템에서 사용됩니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	deps := map[string]system.DependencyStatus{
		constants.DependencyStore: h.checkStore(c.Request().Context()),
	}

	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) checkStore(ctx context.Context) system.DependencyStatus {
	start := time.Now()

	var v any
	err := h.options.GetOption(ctx, healthProbeOption, &v)
	latency := time.Since(start).Milliseconds()

	if err != nil && !apperrors.Is(err, apperrors.NotFound) {
		return system.DependencyStatus{
			Status:    constants.HealthStatusUnhealthy,
			LatencyMs: latency,
			Message:   err.Error(),
		}
	}
	return system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: latency,
		Message:   constants.MsgDepStatusHealthy,
	}
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
	})
}
