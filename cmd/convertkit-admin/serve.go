package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/convertkit-admin/internal/app"
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/pkg/version"
	"github.com/darkkaiser/convertkit-admin/internal/service/api"
	"github.com/darkkaiser/convertkit-admin/internal/service/refresh"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/spf13/cobra"
)

// serviceStarter 서비스 생명주기 계약. Start는 즉시 반환하고 종료 시 WaitGroup에 알립니다.
type serviceStarter interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "관리 화면과 공개 페이지 웹 서버를 실행합니다",
	Long: `설정 파일을 읽어 웹 서버, 리소스 자동 갱신, 텔레그램 알림을 시작합니다.
SIGINT 또는 SIGTERM을 받으면 모든 서비스를 정상 종료합니다.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		return fmt.Errorf("환경설정 로드 실패: %w", err)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}
	if logLevel != "" {
		level, err := applog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logOpts.Level = level
	}
	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}
	defer appLogCloser.Close()

	buildInfo := version.Get()
	fmt.Fprintf(cmd.OutOrStdout(), banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(w)
	}

	a, err := app.New(appConfig)
	if err != nil {
		return fmt.Errorf("애플리케이션 초기화 실패: %w", err)
	}
	defer a.Close()

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	serviceStopWG.Add(1)
	a.StartBackground(serviceStopCtx, serviceStopWG)

	services := []serviceStarter{
		refresh.NewService(appConfig.Kit.RefreshSpec, a.Refresher),
		api.NewService(a, buildInfo),
	}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			return fmt.Errorf("서비스 초기화 실패: %w", err)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호 수신")
	cancel()
	serviceStopWG.Wait()

	return nil
}
