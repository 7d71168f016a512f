package resource

import (
	"context"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/darkkaiser/convertkit-admin/internal/notice"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "resource.refresher"

// API Refresher가 사용하는 Kit API
type API interface {
	Account(ctx context.Context, creds kit.Credentials) (*kit.Account, error)
	Forms(ctx context.Context, creds kit.Credentials) ([]kit.Form, error)
	LandingPages(ctx context.Context, creds kit.Credentials) ([]kit.LandingPage, error)
	Tags(ctx context.Context, creds kit.Credentials) ([]kit.Tag, error)
}

// CredentialsSource 현재 저장된 API 인증 정보를 제공합니다.
type CredentialsSource interface {
	Credentials(ctx context.Context) (kit.Credentials, error)
}

// Notices 인증 실패 알림을 추가하고 삭제합니다.
type Notices interface {
	Add(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Refresher Kit API에서 리소스를 다시 읽어 캐시를 갱신합니다.
//
// 인증에 실패하면 authorization_failed 알림을 추가하고, 인증에 성공하면 해당 알림을 삭제합니다.
type Refresher struct {
	api     API
	creds   CredentialsSource
	notices Notices

	Forms        *Forms
	LandingPages *Collection[kit.LandingPage]
	Tags         *Collection[kit.Tag]
}

// NewRefresher Refresher를 생성합니다.
func NewRefresher(api API, creds CredentialsSource, notices Notices, forms *Forms, landingPages *Collection[kit.LandingPage], tags *Collection[kit.Tag]) *Refresher {
	return &Refresher{
		api:          api,
		creds:        creds,
		notices:      notices,
		Forms:        forms,
		LandingPages: landingPages,
		Tags:         tags,
	}
}

// Refresh 저장된 인증 정보로 계정을 확인하고 폼, 랜딩 페이지, 태그 캐시를 갱신합니다.
func (r *Refresher) Refresh(ctx context.Context) error {
	creds, err := r.creds.Credentials(ctx)
	if err != nil {
		return err
	}
	return r.RefreshWith(ctx, creds)
}

// RefreshWith 주어진 인증 정보로 계정을 확인하고 캐시를 갱신합니다. 설정 저장 직후 호출됩니다.
func (r *Refresher) RefreshWith(ctx context.Context, creds kit.Credentials) error {
	if !creds.Valid() {
		return kit.ErrMissingCredentials
	}

	account, err := r.api.Account(ctx, creds)
	if err != nil {
		return r.fail(ctx, err)
	}
	if _, err := r.notices.Delete(ctx, notice.AuthorizationFailed); err != nil {
		return err
	}

	forms, err := r.api.Forms(ctx, creds)
	if err != nil {
		return r.fail(ctx, err)
	}
	landingPages, err := r.api.LandingPages(ctx, creds)
	if err != nil {
		return r.fail(ctx, err)
	}
	tags, err := r.api.Tags(ctx, creds)
	if err != nil {
		return r.fail(ctx, err)
	}

	if err := r.Forms.Set(ctx, forms); err != nil {
		return err
	}
	if err := r.LandingPages.Set(ctx, landingPages); err != nil {
		return err
	}
	if err := r.Tags.Set(ctx, tags); err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"account":       account.Name,
		"forms":         len(forms),
		"landing_pages": len(landingPages),
		"tags":          len(tags),
	}).Info("Kit 리소스 갱신 완료")

	return nil
}

// fail 인증 실패이면 알림을 남기고 원래 에러를 반환합니다.
func (r *Refresher) fail(ctx context.Context, err error) error {
	if apperrors.Is(err, apperrors.Unauthorized) {
		if addErr := r.notices.Add(ctx, notice.AuthorizationFailed); addErr != nil {
			applog.WithComponentAndFields(component, applog.Fields{"error": addErr}).Error("인증 실패 알림 저장 실패")
		}
	}
	return err
}
