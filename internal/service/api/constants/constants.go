// Package constants 관리 화면 웹 서버 전반에서 공유하는 상수를 정의합니다.
package constants

import "time"

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	ComponentService       = "api.service"
	ComponentHandler       = "api.handler"
	ComponentMiddleware    = "api.middleware"
	ComponentErrorHandler  = "api.error_handler"
	ComponentAdminHandler  = "api.handler.admin"
	ComponentPublicHandler = "api.handler.public"
)

// 서버 설정 기본값
const (
	// DefaultRequestTimeout 요청 처리의 최대 시간. Kit API 동기화가 포함된 설정 저장을 고려한 값입니다.
	DefaultRequestTimeout = 60 * time.Second

	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 75 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultMaxBodySize 게시물 본문을 포함한 요청 본문의 최대 크기
	DefaultMaxBodySize = "2M"

	// ShutdownTimeout Graceful Shutdown 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)

// BasicAuthRealm 관리 화면 인증 영역 이름
const BasicAuthRealm = "convertkit-admin"

// 헬스체크 상태
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	DependencyStore = "store"

	MsgDepStatusHealthy = "정상 작동 중"
)

// 클라이언트에게 반환되는 에러 메시지
const (
	ErrMsgBadRequest         = "잘못된 요청입니다"
	ErrMsgUnauthorized       = "인증이 필요합니다"
	ErrMsgForbidden          = "이 페이지에 접근할 권한이 없습니다"
	ErrMsgNotFound           = "요청한 페이지를 찾을 수 없습니다"
	ErrMsgConflict           = "요청이 현재 상태와 충돌합니다"
	ErrMsgTooManyRequests    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer     = "내부 서버 오류가 발생했습니다"
	ErrMsgServiceUnavailable = "외부 서비스를 일시적으로 사용할 수 없습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInvalidNonce       = "요청이 만료되었거나 올바르지 않습니다. 페이지를 새로 고친 뒤 다시 시도해주세요"
)

// 로그 메시지
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스 > http 서버가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다"

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
)

// SensitiveQueryParams 로그에 남길 때 값을 마스킹해야 하는 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"api_secret",
	"nonce",
	"_wpnonce",
	"password",
	"token",
	"secret",
}
