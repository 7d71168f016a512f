package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthenticator([]config.UserConfig{
		{ID: "admin", PasswordHash: string(hash), Capabilities: []string{config.CapabilityManageOptions, config.CapabilityEditPosts}},
		{ID: "editor", PasswordHash: string(hash), Capabilities: []string{config.CapabilityEditPosts}},
	})
}

func TestAuthenticator_Authenticate(t *testing.T) {
	a := newTestAuthenticator(t)

	t.Run("성공", func(t *testing.T) {
		u, err := a.Authenticate("admin", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, "admin", u.ID)
		assert.True(t, u.CanManageOptions())
	})

	t.Run("권한이 제한된 사용자", func(t *testing.T) {
		u, err := a.Authenticate("editor", "secret-password")
		require.NoError(t, err)
		assert.False(t, u.CanManageOptions())
		assert.True(t, u.Can(config.CapabilityEditPosts))
	})

	t.Run("비밀번호 불일치", func(t *testing.T) {
		_, err := a.Authenticate("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
	})

	t.Run("등록되지 않은 사용자", func(t *testing.T) {
		_, err := a.Authenticate("ghost", "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))
}

func TestUser_NilCan(t *testing.T) {
	var u *User
	assert.False(t, u.Can(config.CapabilityManageOptions))
}

func TestContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := GetUser(c)
	assert.ErrorIs(t, err, ErrUserMissingInContext)
	assert.Panics(t, func() { MustGetUser(c) })

	c.Set(contextKeyUser, "not-a-user")
	_, err = GetUser(c)
	assert.ErrorIs(t, err, ErrUserTypeMismatch)

	u := &User{ID: "admin"}
	SetUser(c, u)
	assert.Same(t, u, MustGetUser(c))
	assert.Same(t, u, FromContext(c.Request().Context()))
	assert.Nil(t, FromContext(context.Background()))
}
