package testutil

import (
	"testing"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/app"
	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/stretchr/testify/require"
)

// 테스트 관리자 계정
const (
	AdminID       = "admin"
	AdminPassword = "password"

	AuthorID       = "author"
	AuthorPassword = "password"
)

// NonceSecret 테스트용 보안 토큰 서명 키
const NonceSecret = "0123456789abcdef0123456789abcdef"

// NewAppConfig port에서 동작하는 메모리 저장소 기반 설정을 만듭니다.
// 모든 권한을 가진 관리자와 게시물 편집 권한만 가진 작성자 계정이 등록됩니다.
func NewAppConfig(t testing.TB, port int) *config.AppConfig {
	t.Helper()

	hash, err := auth.HashPassword(AdminPassword)
	require.NoError(t, err)

	return &config.AppConfig{
		Storage:   config.StorageConfig{Driver: config.StorageMemory},
		Kit:       config.KitConfig{BaseURL: "http://127.0.0.1:1/v3"},
		PostTypes: []string{"page", "post"},
		Admin: config.AdminConfig{
			ListenPort: port,
			Users: []config.UserConfig{
				{ID: AdminID, PasswordHash: hash, Capabilities: []string{config.CapabilityManageOptions, config.CapabilityEditPosts}},
				{ID: AuthorID, PasswordHash: hash, Capabilities: []string{config.CapabilityEditPosts}},
			},
			NonceSecret: NonceSecret,
			NonceTTL:    time.Hour,
		},
	}
}

// NewApp cfg로 메모리 저장소 기반 App을 만들고 테스트가 끝나면 닫습니다.
func NewApp(t testing.TB, cfg *config.AppConfig) *app.App {
	t.Helper()

	a, err := app.NewWithStore(cfg, store.NewMemoryStore())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}
