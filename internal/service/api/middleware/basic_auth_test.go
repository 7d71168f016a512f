package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestBasicAuthAndCapability(t *testing.T) {
	captureLogs(t)

	users := fakeAuthenticator{
		"admin":  {ID: "admin", Capabilities: []string{config.CapabilityManageOptions, config.CapabilityEditPosts}},
		"author": {ID: "author", Capabilities: []string{config.CapabilityEditPosts}},
	}

	e := newEcho()
	g := e.Group("/wp-admin", BasicAuth(users))
	g.GET("/settings", func(c echo.Context) error {
		u := auth.MustGetUser(c)
		assert.Same(t, u, auth.FromContext(c.Request().Context()))
		return c.String(http.StatusOK, u.ID)
	}, RequireCapability(config.CapabilityManageOptions))

	tests := []struct {
		name       string
		user       string
		password   string
		noAuth     bool
		wantStatus int
	}{
		{name: "자격 증명 없음", noAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "비밀번호 불일치", user: "admin", password: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "권한 부족", user: "author", password: "secret", wantStatus: http.StatusForbidden},
		{name: "성공", user: "admin", password: "secret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/wp-admin/settings", nil)
			if !tt.noAuth {
				req.SetBasicAuth(tt.user, tt.password)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get(echo.HeaderWWWAuthenticate), "convertkit-admin")
			}
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.user, rec.Body.String())
			}
		})
	}
}

func TestBasicAuth_NilAuthenticator(t *testing.T) {
	assert.Panics(t, func() { BasicAuth(nil) })
}

func TestRequireCapability_NoUser(t *testing.T) {
	captureLogs(t)

	e := newEcho()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireCapability(config.CapabilityEditPosts))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
