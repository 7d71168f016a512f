// Package api 관리 화면 웹 서버(Echo)의 구성과 생명주기를 담당합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/convertkit-admin/docs"
	"github.com/darkkaiser/convertkit-admin/internal/app"
	"github.com/darkkaiser/convertkit-admin/internal/pkg/version"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/admin"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/public"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler/system"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service 관리 화면 웹 서버의 생명주기를 관리하는 서비스입니다.
//
// Start()로 시작하면 고루틴에서 HTTP/HTTPS 서버를 실행하고, Context가 취소되면
// Graceful Shutdown(최대 5초)을 수행한 뒤 WaitGroup에 종료를 알립니다.
type Service struct {
	app *app.App

	buildInfo version.Info

	// server 실행 중인 Echo 인스턴스. 서비스가 중지되어 있으면 nil입니다.
	server *echo.Echo

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(a *app.App, buildInfo version.Info) *Service {
	if a == nil || a.Config == nil {
		panic("api.NewService: App과 설정은 필수입니다")
	}

	return &Service{
		app:       a,
		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 이 함수는 즉시 반환되며 실제 서버는 고루틴에서 실행됩니다.
// 이미 실행 중이면 serviceStopWG.Done()을 호출하고 nil을 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.app.Store == nil {
		defer serviceStopWG.Done()
		return ErrAppNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true
	s.server = s.setupServer()

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, s.server)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러, 미들웨어 체인, 라우트를 구성한 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	cfg := s.app.Config

	e := NewHTTPServer(HTTPServerConfig{
		Debug:        cfg.Debug,
		EnableHSTS:   cfg.Admin.TLSServer,
		AllowOrigins: cfg.Admin.CORS.AllowOrigins,
		RateLimit:    cfg.Admin.RateLimit,
	})

	RegisterRoutes(e, Handlers{
		System:        system.NewHandler(s.app.Store, s.buildInfo),
		Admin:         admin.NewHandler(s.app),
		Public:        public.NewHandler(s.app.Store, s.app.Renderer),
		Authenticator: s.app.Authenticator,
	})

	return e
}

// startHTTPServer 설정에 따라 HTTP 또는 HTTPS 서버를 시작합니다. 서버가 종료되면 done을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	cfg := s.app.Config.Admin
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": cfg.ListenPort,
		"tls":  cfg.TLSServer,
	}).Info(constants.LogMsgHTTPServerStarting)

	var err error
	if cfg.TLSServer {
		err = e.StartTLS(fmt.Sprintf(":%d", cfg.ListenPort), cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = e.Start(fmt.Sprintf(":%d", cfg.ListenPort))
	}

	s.handleServerError(err)
}

func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.app.Config.Admin.ListenPort,
		"error": err,
	}).Error(constants.LogMsgHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 기다렸다가 Graceful Shutdown을 수행합니다.
// HTTP 서버가 먼저 종료되면(포트 바인딩 실패 등) Shutdown 없이 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.server = nil
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
