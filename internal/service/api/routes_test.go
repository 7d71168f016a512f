package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/pkg/version"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/admin"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/public"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/system"
	"github.com/darkkaiser/convertkit-admin/internal/settings"
	"github.com/darkkaiser/convertkit-admin/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func setupRoutes(t *testing.T) *echo.Echo {
	t.Helper()

	a := testutil.NewApp(t, testutil.NewAppConfig(t, 0))

	e := NewHTTPServer(HTTPServerConfig{})
	RegisterRoutes(e, Handlers{
		System:        system.NewHandler(a.Store, version.Info{Version: "1.0.0"}),
		Admin:         admin.NewHandler(a),
		Public:        public.NewHandler(a.Store, a.Renderer),
		Authenticator: a.Authenticator,
	})
	return e
}

func TestRegisterRoutes_Registered(t *testing.T) {
	captureLogs(t)
	e := setupRoutes(t)

	expected := map[string]string{
		"/health":                   http.MethodGet,
		"/version":                  http.MethodGet,
		"/swagger/*":                http.MethodGet,
		"/wp-admin/":                http.MethodGet,
		"/wp-admin/options.php":     http.MethodPost,
		"/wp-admin/admin-ajax.php":  http.MethodPost,
		"/wp-admin/js/quicktags.js": http.MethodGet,
		"/wp-admin/post-new.php":    http.MethodGet,
		"/:slug":                    http.MethodGet,
	}

	for path, method := range expected {
		found := false
		for _, r := range e.Routes() {
			if r.Path == path && r.Method == method {
				found = true
				break
			}
		}
		assert.True(t, found, "%s %s 라우트가 등록되어야 합니다", method, path)
	}
}

func TestRegisterRoutes_Access(t *testing.T) {
	captureLogs(t)
	e := setupRoutes(t)

	settingsPath := "/wp-admin/options-general.php?page=" + settings.GeneralKey

	tests := []struct {
		name       string
		path       string
		user       string
		password   string
		wantStatus int
	}{
		{name: "헬스체크는 인증 불필요", path: "/health", wantStatus: http.StatusOK},
		{name: "Swagger UI", path: "/swagger/index.html", wantStatus: http.StatusOK},
		{name: "관리 화면 인증 필요", path: "/wp-admin/", wantStatus: http.StatusUnauthorized},
		{name: "잘못된 비밀번호", path: "/wp-admin/", user: testutil.AdminID, password: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "관리자 대시보드", path: "/wp-admin/", user: testutil.AdminID, password: testutil.AdminPassword, wantStatus: http.StatusOK},
		{name: "관리자 설정 화면", path: settingsPath, user: testutil.AdminID, password: testutil.AdminPassword, wantStatus: http.StatusOK},
		{name: "작성자는 설정 화면 접근 불가", path: settingsPath, user: testutil.AuthorID, password: testutil.AuthorPassword, wantStatus: http.StatusForbidden},
		{name: "작성자 새 게시물", path: "/wp-admin/post-new.php?post_type=page", user: testutil.AuthorID, password: testutil.AuthorPassword, wantStatus: http.StatusOK},
		{name: "없는 공개 페이지", path: "/no-such-page", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.user != "" {
				req.SetBasicAuth(tt.user, tt.password)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
