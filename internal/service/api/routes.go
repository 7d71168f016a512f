package api

import (
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/admin"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/public"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/system"
	appmiddleware "github.com/darkkaiser/convertkit-admin/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers 라우트에 연결할 핸들러 모음
type Handlers struct {
	System *system.Handler
	Admin  *admin.Handler
	Public *public.Handler

	// Authenticator 관리 화면(/wp-admin) Basic 인증
	Authenticator appmiddleware.Authenticator
}

// RegisterRoutes 웹 서버의 모든 라우트를 등록합니다.
//
//   - 시스템 엔드포인트: /health, /version (인증 불필요)
//   - API 문서: /swagger/*
//   - 관리 화면: /wp-admin/* (Basic 인증 + 화면별 권한)
//   - 공개 페이지: /:slug
func RegisterRoutes(e *echo.Echo, h Handlers) {
	registerSystemRoutes(e, h.System)
	registerSwaggerRoutes(e)
	registerAdminRoutes(e, h.Admin, h.Authenticator)
	registerPublicRoutes(e, h.Public)
}

func registerSystemRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}

func registerSwaggerRoutes(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}

func registerAdminRoutes(e *echo.Echo, h *admin.Handler, authenticator appmiddleware.Authenticator) {
	g := e.Group("/wp-admin", appmiddleware.BasicAuth(authenticator))

	manageOptions := appmiddleware.RequireCapability(config.CapabilityManageOptions)
	editPosts := appmiddleware.RequireCapability(config.CapabilityEditPosts)

	g.GET("/", h.Dashboard)
	g.GET("/options-general.php", h.SettingsPage, manageOptions)
	g.POST("/options.php", h.SaveSettings, manageOptions)
	g.GET("/admin.php", h.SetupPage, manageOptions)
	g.POST("/admin.php", h.SubmitSetup, manageOptions)

	g.GET("/post-new.php", h.NewPost, editPosts)
	g.GET("/post.php", h.EditPost, editPosts)
	g.POST("/post.php", h.SavePost, editPosts)
	g.POST("/admin-ajax.php", h.Ajax, editPosts)
	g.GET("/js/quicktags.js", h.QuickTagsScript, editPosts)
}

func registerPublicRoutes(e *echo.Echo, h *public.Handler) {
	e.GET("/:slug", h.Page)
}
