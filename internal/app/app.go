// Package app 설정으로부터 저장소와 도메인 구성 요소를 생성하고 서로 연결합니다.
package app

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/frontend"
	"github.com/darkkaiser/convertkit-admin/internal/hook"
	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/darkkaiser/convertkit-admin/internal/nonce"
	"github.com/darkkaiser/convertkit-admin/internal/notice"
	"github.com/darkkaiser/convertkit-admin/internal/notifier/telegram"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/postmeta"
	"github.com/darkkaiser/convertkit-admin/internal/resource"
	"github.com/darkkaiser/convertkit-admin/internal/settings"
	"github.com/darkkaiser/convertkit-admin/internal/setup"
	"github.com/darkkaiser/convertkit-admin/internal/shortcode"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/darkkaiser/convertkit-admin/internal/store/sqlstore"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "app"

// SettingsPath 플러그인 설정 화면 경로
const SettingsPath = "/wp-admin/options-general.php?page=" + settings.GeneralKey

// App 애플리케이션 구성 요소 모음
type App struct {
	Config *config.AppConfig

	Store store.Store
	Hooks *hook.Registry

	Notices  *notice.Store
	Settings *settings.Store
	PostMeta *postmeta.Store

	Forms        *resource.Forms
	LandingPages *resource.Collection[kit.LandingPage]
	Tags         *resource.Collection[kit.Tag]
	Refresher    *resource.Refresher

	Shortcodes *shortcode.Registry
	Renderer   *frontend.Renderer
	Wizard     *setup.Wizard

	Nonces        *nonce.Manager
	Authenticator *auth.Authenticator

	// Telegram 알림이 비활성화되어 있으면 nil입니다.
	Telegram *telegram.Notifier
}

// New 설정에 지정된 저장소를 열고 구성 요소를 생성합니다.
func New(cfg *config.AppConfig) (*App, error) {
	s, err := OpenStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	a, err := NewWithStore(cfg, s)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStore 이미 열린 저장소로 구성 요소를 생성합니다.
func NewWithStore(cfg *config.AppConfig, s store.Store) (*App, error) {
	a := &App{
		Config: cfg,
		Store:  s,
		Hooks:  hook.NewRegistry(),
	}

	settingsURL := a.SettingsURL()

	var noticeOpts []notice.Option
	if cfg.Notifier.Telegram.Enabled {
		n, err := telegram.New(cfg.Notifier.Telegram, settingsURL)
		if err != nil {
			return nil, err
		}
		a.Telegram = n
		noticeOpts = append(noticeOpts, notice.WithObserver(n))
	}

	a.Notices = notice.NewStore(s, settingsURL, noticeOpts...)
	a.Notices.Register(a.Hooks)

	a.Settings = settings.NewStore(s, cfg.PostTypes, kit.Credentials{APIKey: cfg.Kit.APIKey, APISecret: cfg.Kit.APISecret})
	a.PostMeta = postmeta.NewStore(s)

	a.Forms = resource.NewForms(s)
	a.LandingPages = resource.NewLandingPages(s)
	a.Tags = resource.NewTags(s)
	a.Refresher = resource.NewRefresher(kit.NewClient(cfg.Kit), a.Settings, a.Notices, a.Forms, a.LandingPages, a.Tags)

	a.Shortcodes = shortcode.NewRegistry()
	shortcode.RegisterConvertKit(a.Shortcodes, a.Forms)
	a.Renderer = frontend.NewRenderer(a.Shortcodes, a.Forms, a.Settings, a.PostMeta)
	a.Wizard = setup.NewWizard(a.Forms, a.Settings)

	a.Nonces = nonce.NewManager(cfg.Admin.NonceSecret, cfg.Admin.NonceTTL)
	a.Authenticator = auth.NewAuthenticator(cfg.Admin.Users)

	return a, nil
}

// OpenStore 드라이버에 맞는 저장소를 엽니다.
func OpenStore(cfg config.StorageConfig) (store.Store, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"driver": cfg.Driver,
		"path":   cfg.Path,
	}).Info("저장소를 엽니다")

	switch cfg.Driver {
	case config.StorageMemory:
		return store.NewMemoryStore(), nil
	case config.StorageFile:
		return store.NewFileStore(cfg.Path)
	case config.StorageSQLite:
		return sqlstore.Open(config.StorageSQLite, cfg.Path)
	case config.StoragePostgres:
		return sqlstore.Open(config.StoragePostgres, cfg.DSN)
	}
	return nil, apperrors.New(apperrors.InvalidInput, "지원하지 않는 저장소 드라이버입니다: "+cfg.Driver)
}

// SettingsURL 설정 화면의 절대 주소. site_url이 없으면 상대 경로입니다.
func (a *App) SettingsURL() string {
	return a.URL(SettingsPath)
}

// URL site_url 기준의 주소를 만듭니다.
func (a *App) URL(path string) string {
	base := strings.TrimRight(a.Config.Admin.SiteURL, "/")
	if base == "" {
		return path
	}
	if u, err := url.Parse(base + path); err == nil {
		return u.String()
	}
	return base + path
}

// StartBackground 텔레그램 발송 고루틴을 시작합니다. 비활성화되어 있으면 wg.Done()만 호출합니다.
func (a *App) StartBackground(ctx context.Context, wg *sync.WaitGroup) {
	if a.Telegram == nil {
		wg.Done()
		return
	}
	a.Telegram.Start(ctx, wg)
}

// Close 저장소를 닫습니다.
func (a *App) Close() error {
	return a.Store.Close()
}
