package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfigJSON = `{
	"debug": true,
	"storage": { "driver": "sqlite", "path": "convertkit.db" },
	"kit": { "http_retry": { "max_retries": 5, "retry_delay": "500ms" } },
	"post_types": ["page", "post", "article"],
	"admin": {
		"listen_port": 2443,
		"site_url": "https://example.com",
		"cors": { "allow_origins": ["https://example.com"] },
		"users": [
			{ "id": "admin", "password_hash": "` + testPasswordHash + `", "capabilities": ["manage_options", "edit_posts"] }
		],
		"nonce_secret": "0123456789abcdef0123456789abcdef"
	}
}`

func TestNormalizeEnvKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"CKADMIN_DEBUG", "debug"},
		{"CKADMIN_KIT__HTTP_RETRY__MAX_RETRIES", "kit.http_retry.max_retries"},
		{"CKADMIN_ADMIN__CORS__ALLOW_ORIGINS", "admin.cors.allow_origins"},
		{"CKADMIN_Mixed_Case__Key", "mixed_case.key"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeEnvKey(tt.input), tt.input)
	}
}

func TestLoadWithFile(t *testing.T) {
	t.Run("파일 값이 기본값을 덮어쓴다", func(t *testing.T) {
		cfg, err := LoadWithFile(writeConfigFile(t, validConfigJSON))
		require.NoError(t, err)

		assert.True(t, cfg.Debug)
		assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
		assert.Equal(t, []string{"page", "post", "article"}, cfg.PostTypes)
		assert.Equal(t, 5, cfg.Kit.HTTPRetry.MaxRetries)
		assert.Equal(t, 500*time.Millisecond, cfg.Kit.HTTPRetry.RetryDelay)
		assert.Equal(t, 2443, cfg.Admin.ListenPort)
		require.Len(t, cfg.Admin.Users, 1)
		assert.Equal(t, []string{CapabilityManageOptions, CapabilityEditPosts}, cfg.Admin.Users[0].Capabilities)

		// 파일에 없는 항목은 기본값 유지
		assert.Equal(t, "https://api.convertkit.com/v3", cfg.Kit.BaseURL)
		assert.Equal(t, 12*time.Hour, cfg.Admin.NonceTTL)
		assert.True(t, cfg.HasPostType("article"))
		assert.False(t, cfg.HasPostType("product"))
	})

	t.Run("환경 변수가 파일 값을 덮어쓴다", func(t *testing.T) {
		t.Setenv("CKADMIN_ADMIN__LISTEN_PORT", "9090")
		t.Setenv("CKADMIN_KIT__BASE_URL", "http://127.0.0.1:9999/v3")

		cfg, err := LoadWithFile(writeConfigFile(t, validConfigJSON))
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Admin.ListenPort)
		assert.Equal(t, "http://127.0.0.1:9999/v3", cfg.Kit.BaseURL)
	})

	t.Run("설정 파일이 없는 경우", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("정의되지 않은 키가 있는 경우", func(t *testing.T) {
		_, err := LoadWithFile(writeConfigFile(t, `{"unknown_key": 1}`))
		require.Error(t, err)
	})
}

func TestLoadWithFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "관리자 사용자가 없는 경우",
			content: `{"admin": {"nonce_secret": "0123456789abcdef0123456789abcdef"}}`,
			errMsg:  "admin.users",
		},
		{
			name: "bcrypt 해시가 아닌 비밀번호",
			content: `{"admin": {"nonce_secret": "0123456789abcdef0123456789abcdef",
				"users": [{"id": "admin", "password_hash": "plain-password"}]}}`,
			errMsg: "bcrypt",
		},
		{
			name: "잘못된 저장소 드라이버",
			content: `{"storage": {"driver": "mysql"}, "admin": {"nonce_secret": "0123456789abcdef0123456789abcdef",
				"users": [{"id": "admin", "password_hash": "` + testPasswordHash + `"}]}}`,
			errMsg: "storage.driver",
		},
		{
			name: "postgres DSN 누락",
			content: `{"storage": {"driver": "postgres"}, "admin": {"nonce_secret": "0123456789abcdef0123456789abcdef",
				"users": [{"id": "admin", "password_hash": "` + testPasswordHash + `"}]}}`,
			errMsg: "storage.dsn",
		},
		{
			name: "잘못된 Cron 표현식",
			content: `{"kit": {"refresh_spec": "every hour"}, "admin": {"nonce_secret": "0123456789abcdef0123456789abcdef",
				"users": [{"id": "admin", "password_hash": "` + testPasswordHash + `"}]}}`,
			errMsg: "refresh_spec",
		},
		{
			name: "잘못된 CORS Origin",
			content: `{"admin": {"nonce_secret": "0123456789abcdef0123456789abcdef", "cors": {"allow_origins": ["https://example.com/path"]},
				"users": [{"id": "admin", "password_hash": "` + testPasswordHash + `"}]}}`,
			errMsg: "CORS Origin",
		},
		{
			name: "짧은 nonce 서명 키",
			content: `{"admin": {"nonce_secret": "short",
				"users": [{"id": "admin", "password_hash": "` + testPasswordHash + `"}]}}`,
			errMsg: "nonce_secret",
		},
		{
			name: "중복된 사용자 ID",
			content: `{"admin": {"nonce_secret": "0123456789abcdef0123456789abcdef", "users": [
				{"id": "admin", "password_hash": "` + testPasswordHash + `"},
				{"id": "admin", "password_hash": "` + testPasswordHash + `"}]}}`,
			errMsg: "중복",
		},
		{
			name: "알 수 없는 권한",
			content: `{"admin": {"nonce_secret": "0123456789abcdef0123456789abcdef",
				"users": [{"id": "admin", "password_hash": "` + testPasswordHash + `", "capabilities": ["root"]}]}}`,
			errMsg: "capabilities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAppConfig_VerifyRecommendations(t *testing.T) {
	t.Parallel()

	cfg := newDefaultConfig()
	cfg.Admin.ListenPort = 80
	cfg.Storage.Driver = StorageMemory

	warnings := cfg.VerifyRecommendations()
	assert.Len(t, warnings, 3)
}
