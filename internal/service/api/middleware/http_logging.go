package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/darkkaiser/convertkit-admin/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// defaultBytesIn Content-Length 헤더가 없을 때(Chunked 전송 등) bytes_in 필드에 기록되는 값
const defaultBytesIn = "0"

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
// 핸들러의 에러는 여기서 Echo 에러 핸들러로 넘겨 응답 상태 코드가 로그에 반영되게 합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			// 패닉이 발생해도 로그를 남긴다.
			defer func() {
				latency := time.Since(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}
				bytesIn := req.Header.Get(echo.HeaderContentLength)
				if bytesIn == "" {
					bytesIn = defaultBytesIn
				}

				fields := applog.Fields{
					"method":        req.Method,
					"path":          path,
					"uri":           maskSensitiveQueryParams(req.RequestURI),
					"host":          req.Host,
					"protocol":      req.Proto,
					"remote_ip":     c.RealIP(),
					"user_agent":    req.UserAgent(),
					"referer":       req.Referer(),
					"status":        res.Status,
					"bytes_in":      bytesIn,
					"bytes_out":     strconv.FormatInt(res.Size, 10),
					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),
					"request_id":    res.Header().Get(echo.HeaderXRequestID),
				}
				if u, err := auth.GetUser(c); err == nil {
					fields["user_id"] = u.ID
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Info("HTTP 요청")
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		}
	}
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 마스킹합니다. 파싱에 실패하면 원본을 반환합니다.
//
//	"/wp-admin/admin-ajax.php?nonce=eyJhbGciOi&x=1" -> "/wp-admin/admin-ajax.php?nonce=eyJh***&x=1"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false
	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.Mask(q.Get(param)))
			masked = true
		}
	}
	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
