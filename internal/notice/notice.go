// Package notice 관리 화면 전체에 걸쳐 표시되는 지속 알림(persistent notice)을 관리합니다.
//
// 알림은 식별자 문자열(예: authorization_failed)의 중복 없는 목록으로 옵션 저장소에 저장되며,
// 운영자가 원인을 해결해서 명시적으로 삭제할 때까지 모든 관리 화면 상단에 출력됩니다.
package notice

import (
	"context"
	"fmt"
	"html"
	"io"
	"slices"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/hook"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "notice"

// OptionKey 알림 목록이 저장되는 옵션 이름
const OptionKey = "convertkit_admin_notices"

// SettingsScreen 플러그인 설정 화면 식별자. 이 화면에서는 알림을 출력하지 않습니다.
const SettingsScreen = "settings_page__wp_convertkit_settings"

// 알림 식별자
const (
	AuthorizationFailed = "authorization_failed"
)

// Observer 새 알림이 추가되었을 때 통지를 받습니다.
type Observer interface {
	NoticeAdded(ctx context.Context, id string)
}

// Store 옵션 저장소 위에서 동작하는 지속 알림 저장소입니다.
//
// 추가와 삭제는 읽기-수정-쓰기 순서로 수행되며 동시에 호출되면 마지막 쓰기가 남습니다.
type Store struct {
	options     store.Options
	settingsURL string
	observer    Observer
}

// Option Store 생성 옵션
type Option func(*Store)

// WithObserver 새 알림이 추가될 때 호출될 Observer를 지정합니다.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore 알림 저장소를 생성합니다. settingsURL은 알림 메시지의 설정 화면 링크에 사용됩니다.
func NewStore(options store.Options, settingsURL string, opts ...Option) *Store {
	s := &Store{options: options, settingsURL: settingsURL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register admin_notices 액션에 Output을 등록합니다.
func (s *Store) Register(hooks *hook.Registry) {
	hooks.Add(hook.AdminNotices, hook.DefaultPriority, func(w io.Writer, e hook.Event) error {
		return s.Output(e.Ctx, w, e.Screen, e.Viewer)
	})
}

// Add 알림을 추가합니다. 이미 존재하는 알림이면 목록은 그대로 다시 저장됩니다.
func (s *Store) Add(ctx context.Context, id string) error {
	notices, err := s.Get(ctx)
	if err != nil {
		return err
	}

	added := !slices.Contains(notices, id)
	if added {
		notices = append(notices, id)
	}

	if err := s.options.UpdateOption(ctx, OptionKey, notices); err != nil {
		return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("알림(%s)을 저장하지 못했습니다", id))
	}

	if added {
		applog.WithComponentAndFields(component, applog.Fields{"notice": id}).Info("관리자 알림 추가됨")

		if s.observer != nil {
			s.observer.NoticeAdded(ctx, id)
		}
	}

	return nil
}

// Get 저장된 알림 목록을 반환합니다. 저장된 알림이 없으면 nil을 반환합니다.
func (s *Store) Get(ctx context.Context) ([]string, error) {
	var notices []string
	if err := s.options.GetOption(ctx, OptionKey, &notices); err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return nil, nil
		}
		return nil, err
	}

	if len(notices) == 0 {
		return nil, nil
	}
	return notices, nil
}

// Exist 저장된 알림이 하나 이상 있는지 확인합니다. 저장소 조회에 실패하면 false입니다.
func (s *Store) Exist(ctx context.Context) bool {
	notices, err := s.Get(ctx)
	return err == nil && len(notices) > 0
}

// Delete 알림을 삭제합니다.
//
// 저장된 알림이 없으면 아무것도 쓰지 않고 false를 반환합니다. 그 외에는 목록에 id가 없더라도
// 목록을 다시 저장하고 true를 반환합니다.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	notices, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if len(notices) == 0 {
		return false, nil
	}

	removed := false
	if idx := slices.Index(notices, id); idx != -1 {
		notices = slices.Delete(notices, idx, idx+1)
		removed = true
	}

	if err := s.options.UpdateOption(ctx, OptionKey, notices); err != nil {
		return false, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("알림(%s) 삭제 결과를 저장하지 못했습니다", id))
	}

	if removed {
		applog.WithComponentAndFields(component, applog.Fields{"notice": id}).Info("관리자 알림 삭제됨")
	}

	return true, nil
}

// Output 알림을 관리 화면 상단에 출력합니다.
//
// 플러그인 설정 화면이거나, 사용자에게 manage_options 권한이 없거나, 저장된 알림이 없으면 아무것도
// 출력하지 않습니다. 저장소 조회에 실패해도 경고 로그만 남기고 아무것도 출력하지 않습니다. 메시지가 정의되지 않은 알림은 빈 본문으로 출력됩니다.
func (s *Store) Output(ctx context.Context, w io.Writer, screen string, viewer hook.Viewer) error {
	if screen == SettingsScreen {
		return nil
	}
	if viewer == nil || !viewer.Can(config.CapabilityManageOptions) {
		return nil
	}

	notices, err := s.Get(ctx)
	if err != nil {
		// 알림 출력 실패로 관리 화면 전체가 깨지면 안 되므로 기록만 하고 넘어갑니다.
		applog.WithComponentAndFields(component, applog.Fields{
			"screen": screen,
			"error":  err,
		}).Warn("저장된 알림을 읽지 못해 출력을 건너뜁니다")
		return nil
	}

	for _, id := range notices {
		if _, err := fmt.Fprintf(w, `<div class="notice notice-error"><p>%s</p></div>`, s.message(id)); err != nil {
			return err
		}
	}
	return nil
}

// message 알림 식별자에 해당하는 HTML 메시지를 반환합니다.
func (s *Store) message(id string) string {
	switch id {
	case AuthorizationFailed:
		return fmt.Sprintf(`%s <a href="%s">%s</a>`,
			html.EscapeString("ConvertKit: Authorization failed. Please enter valid API credentials on the"),
			html.EscapeString(s.settingsURL),
			"settings screen.",
		)
	}
	return ""
}
