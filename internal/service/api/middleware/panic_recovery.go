package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize 패닉 스택 트레이스 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러의 패닉을 복구하고 스택 트레이스와 함께 기록한 뒤 500 응답으로 바꿉니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler는 의도된 연결 중단이므로 그대로 전파한다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err = newErrPanicRecovered(r)

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error": err,
					"stack": string(stack[:length]),
					"path":  c.Request().URL.Path,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}
				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Error("패닉 복구: 예기치 못한 오류가 발생하여 안전하게 복구했습니다")
			}()
			return next(c)
		}
	}
}
