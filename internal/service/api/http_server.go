package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/convertkit-admin/internal/service/api/middleware"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// EnableHSTS HTTPS로 서비스할 때 Strict-Transport-Security 헤더를 추가합니다.
	EnableHSTS bool

	// AllowOrigins CORS에서 허용할 Origin 목록. 비어 있으면 CORS 미들웨어를 적용하지 않습니다.
	AllowOrigins []string

	// RateLimit IP 단위 요청 제한. Enabled가 false이면 적용하지 않습니다.
	RateLimit config.RateLimitConfig

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (기본값: 60초)
	RequestTimeout time.Duration
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어의 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID - 로그에 request_id를 남기도록 로깅보다 먼저 적용
//  3. Server 헤더 제거
//  4. HTTPLogger - 429/503 응답도 기록되도록 RateLimit/Timeout 이전에 적용
//  5. RateLimiting - 설정에서 활성화한 경우에만
//  6. BodyLimit - 게시물 본문을 포함한 요청 본문 크기 제한 (기본: 2MB)
//  7. Timeout - 요청 처리 시간 제한 (기본: 60초, 설정 저장 후 리소스 동기화 포함)
//  8. CORS - 허용 Origin이 설정된 경우에만
//  9. Secure - 보안 헤더
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 RegisterRoutes로 등록합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	if cfg.RateLimit.Enabled {
		e.Use(appmiddleware.RateLimiting(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	if len(cfg.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.AllowOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowCredentials: !containsWildcard(cfg.AllowOrigins),
		}))
	}

	secure := middleware.DefaultSecureConfig
	secure.XFrameOptions = "SAMEORIGIN"
	if cfg.EnableHSTS {
		secure.HSTSMaxAge = 31536000
	}
	e.Use(middleware.SecureWithConfig(secure))

	return e
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
