// Package refresh Kit 계정의 폼, 랜딩 페이지, 태그 캐시를 Cron 스케줄에 맞춰 갱신하는 서비스입니다.
package refresh

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/pkg/cronx"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/robfig/cron/v3"
)

const component = "refresh.service"

// refreshTimeout 한 번의 갱신에 허용되는 최대 시간
const refreshTimeout = 2 * time.Minute

// Refresher 리소스 캐시를 갱신합니다.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Service 리소스 갱신 스케줄러
type Service struct {
	spec      string
	refresher Refresher

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService spec이 비어 있으면 Start 호출 시 아무 작업도 등록하지 않습니다.
func NewService(spec string, refresher Refresher) *Service {
	if refresher == nil {
		panic("Refresher는 필수입니다")
	}
	return &Service{spec: spec, refresher: refresher}
}

// Start 스케줄러를 시작합니다. serviceStopCtx가 취소되면 실행 중인 갱신이 끝날 때까지 기다린 뒤
// serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("리소스 갱신 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if s.spec == "" {
		serviceStopWG.Done()
		applog.WithComponent(component).Info("갱신 주기(kit.refresh_spec)가 비어 있어 리소스 자동 갱신을 사용하지 않습니다")
		return nil
	}

	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		serviceStopWG.Done()
		s.cron = nil
		return apperrors.Wrap(err, apperrors.InvalidInput, "리소스 갱신 스케줄 등록에 실패했습니다")
	}

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"spec": s.spec,
	}).Info("리소스 갱신 서비스 시작됨")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 스케줄러를 중지하고 실행 중인 갱신이 끝날 때까지 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("리소스 갱신 서비스 중지됨")
}

// runOnce 서비스 종료 신호와 분리된 컨텍스트로 갱신합니다. 종료 시 cron.Stop()이 완료를 기다립니다.
func (s *Service) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	err := s.refresher.Refresh(ctx)
	switch {
	case err == nil:
		applog.WithComponent(component).Info("리소스 캐시 갱신 완료")
	case apperrors.Is(err, apperrors.InvalidInput):
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Debug("API 인증 정보가 설정되지 않아 리소스 갱신을 건너뜁니다")
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("리소스 캐시 갱신 실패")
	}
}
