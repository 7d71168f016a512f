package middleware

import (
	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Authenticator 사용자 ID와 비밀번호를 확인합니다.
type Authenticator interface {
	Authenticate(id, password string) (*auth.User, error)
}

// BasicAuth HTTP Basic 인증으로 관리 화면 사용자를 확인하고 인증된 사용자를 요청 문맥에 저장합니다.
// 인증에 실패하면 WWW-Authenticate 헤더와 함께 401을 반환합니다.
func BasicAuth(a Authenticator) echo.MiddlewareFunc {
	if a == nil {
		panic("BasicAuth: Authenticator는 필수입니다")
	}

	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: constants.BasicAuthRealm,
		Validator: func(id, password string, c echo.Context) (bool, error) {
			u, err := a.Authenticate(id, password)
			if err != nil {
				return false, nil
			}
			auth.SetUser(c, u)
			return true, nil
		},
	})
}

// RequireCapability 로그인한 사용자에게 capability 권한이 없으면 403을 반환합니다.
// BasicAuth 뒤에 적용해야 합니다.
func RequireCapability(capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := auth.GetUser(c)
			if err != nil || !u.Can(capability) {
				fields := applog.Fields{
					"capability": capability,
					"path":       c.Request().URL.Path,
				}
				if u != nil {
					fields["user_id"] = u.ID
				}
				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Warn("권한 부족: 요청이 거부되었습니다")
				return ErrCapabilityRequired
			}
			return next(c)
		}
	}
}
