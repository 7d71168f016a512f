// Package admin 관리 화면(대시보드, 플러그인 설정, 설정 마법사, 게시물 편집기)과 AJAX 엔드포인트를 처리합니다.
//
// 모든 핸들러는 BasicAuth 미들웨어 뒤에서 실행되며, 요청 문맥에 인증된 사용자가 있다고 가정합니다.
package admin

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/darkkaiser/convertkit-admin/internal/app"
	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/hook"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// 관리 화면 경로
const (
	AjaxPath      = "/wp-admin/admin-ajax.php"
	QuickTagsPath = "/wp-admin/js/quicktags.js"
)

// 보안 토큰 동작 이름
const (
	editorNonceAction = "convertkit_admin_tinymce"
	setupNonceAction  = "convertkit-setup"
	addPostAction     = "add-post"
)

// 관리 화면 식별자 (admin_notices 액션에 전달)
const (
	screenDashboard = "dashboard"
	screenSetup     = "admin_page_convertkit-setup"
	screenPost      = "post"
)

//go:embed views/*.html
var viewFS embed.FS

var views = template.Must(template.New("admin").ParseFS(viewFS, "views/*.html"))

// Handler 관리 화면 핸들러
type Handler struct {
	app *app.App
}

// NewHandler Handler를 생성합니다.
func NewHandler(a *app.App) *Handler {
	if a == nil {
		panic("admin.NewHandler: App은 필수입니다")
	}
	return &Handler{app: a}
}

// layout 공통 레이아웃에 전달되는 값
type layout struct {
	Title   string
	Heading bool
	Screen  string

	Notices template.HTML
	Body    template.HTML

	InlineScript template.JS
	Scripts      []string
}

// render name 본문 템플릿을 공통 레이아웃으로 감싸 응답합니다.
// 레이아웃 상단에는 admin_notices 액션의 출력이 들어갑니다.
func (h *Handler) render(c echo.Context, status int, l layout, name string, data any) error {
	var body bytes.Buffer
	if err := views.ExecuteTemplate(&body, name, data); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "관리 화면 렌더링에 실패했습니다: "+name)
	}
	l.Body = template.HTML(body.String())

	var notices bytes.Buffer
	if err := h.app.Hooks.Do(&notices, hook.AdminNotices, h.event(c, l.Screen)); err != nil {
		return err
	}
	l.Notices = template.HTML(notices.String())

	var out bytes.Buffer
	if err := views.ExecuteTemplate(&out, "layout", l); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "관리 화면 레이아웃 렌더링에 실패했습니다")
	}
	return c.HTMLBlob(status, out.Bytes())
}

func (h *Handler) event(c echo.Context, screen string) hook.Event {
	return hook.Event{
		Ctx:    c.Request().Context(),
		Screen: screen,
		Viewer: auth.MustGetUser(c),
	}
}

func (h *Handler) createNonce(c echo.Context, action string) (string, error) {
	return h.app.Nonces.Create(auth.MustGetUser(c).ID, action)
}

// verifyNonce 요청의 보안 토큰을 확인합니다. 실패하면 Forbidden 에러입니다.
func (h *Handler) verifyNonce(c echo.Context, token, action string) error {
	u := auth.MustGetUser(c)
	if err := h.app.Nonces.Verify(token, u.ID, action); err != nil {
		applog.WithComponentAndFields(constants.ComponentAdminHandler, applog.Fields{
			"user_id": u.ID,
			"action":  action,
			"path":    c.Request().URL.Path,
			"error":   err,
		}).Warn("보안 토큰 검증 실패")

		return httputil.NewForbiddenError(constants.ErrMsgInvalidNonce)
	}
	return nil
}
