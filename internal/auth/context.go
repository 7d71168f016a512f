package auth

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
)

// contextKeyUser 인증된 User 저장용 echo.Context 키
const contextKeyUser = "convertkit-admin/auth/user"

type ctxKey struct{}

// SetUser 인증된 사용자 정보를 echo.Context와 요청의 context.Context 양쪽에 저장합니다.
func SetUser(c echo.Context, u *User) {
	c.Set(contextKeyUser, u)
	c.SetRequest(c.Request().WithContext(NewContext(c.Request().Context(), u)))
}

// GetUser echo.Context에서 사용자 정보를 조회합니다.
func GetUser(c echo.Context) (*User, error) {
	val := c.Get(contextKeyUser)
	if val == nil {
		return nil, ErrUserMissingInContext
	}

	u, ok := val.(*User)
	if !ok {
		return nil, ErrUserTypeMismatch
	}

	return u, nil
}

// MustGetUser 인증 미들웨어를 통과하여 사용자 정보가 반드시 존재할 때 사용합니다.
// 조회에 실패하면 panic이 발생합니다.
func MustGetUser(c echo.Context) *User {
	u, err := GetUser(c)
	if err != nil {
		panic(fmt.Sprintf("Auth: Context에서 사용자 정보를 가져올 수 없습니다. 인증 미들웨어가 적용되었는지 확인해주세요. (원인: %v)", err))
	}
	return u
}

// NewContext u를 담은 context.Context를 반환합니다.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext context.Context에 저장된 사용자를 반환합니다. 없으면 nil입니다.
func FromContext(ctx context.Context) *User {
	u, _ := ctx.Value(ctxKey{}).(*User)
	return u
}
