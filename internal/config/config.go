package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/pkg/cronx"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "convertkit-admin"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 탐색하는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 이중 언더스코어(__)는 계층 구분자로 해석됩니다. (예: CKADMIN_ADMIN__LISTEN_PORT -> admin.listen_port)
	EnvPrefix = "CKADMIN_"
)

// 저장소 드라이버
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// 관리자 권한(capability)
const (
	CapabilityManageOptions = "manage_options"
	CapabilityEditPosts     = "edit_posts"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 구조체
type AppConfig struct {
	Debug     bool           `json:"debug"`
	Storage   StorageConfig  `json:"storage"`
	Kit       KitConfig      `json:"kit"`
	PostTypes []string       `json:"post_types" validate:"min=1,unique,dive,required,alphanum"`
	Admin     AdminConfig    `json:"admin"`
	Notifier  NotifierConfig `json:"notifier"`
}

// StorageConfig 옵션/게시물 저장소 설정
type StorageConfig struct {
	Driver string `json:"driver" validate:"oneof=memory file sqlite postgres"`
	Path   string `json:"path"` // file: 데이터 디렉토리, sqlite: DB 파일 경로
	DSN    string `json:"dsn"`  // postgres 접속 문자열
}

func (c *StorageConfig) validate() error {
	switch c.Driver {
	case StorageFile, StorageSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("저장소 드라이버 '%s'는 경로(storage.path) 설정이 필요합니다", c.Driver))
		}
	case StoragePostgres:
		if strings.TrimSpace(c.DSN) == "" {
			return apperrors.New(apperrors.InvalidInput, "저장소 드라이버 'postgres'는 접속 문자열(storage.dsn) 설정이 필요합니다")
		}
	}
	return nil
}

// KitConfig Kit(ConvertKit) REST API 연동 설정
type KitConfig struct {
	BaseURL        string          `json:"base_url" validate:"required,url"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"min=0"`
	HTTPRetry      HTTPRetryConfig `json:"http_retry"`

	// APIKey, APISecret 설정하면 관리 화면에서 인증 정보를 변경할 수 없고 마스킹된 값만 표시됩니다.
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret" validate:"required_with=APIKey"`

	// RefreshSpec 폼/랜딩 페이지/태그 목록을 주기적으로 갱신하는 Cron 표현식 (빈 값이면 비활성화)
	RefreshSpec string `json:"refresh_spec"`
}

func (c *KitConfig) validate() error {
	if c.RefreshSpec != "" {
		if err := cronx.Validate(c.RefreshSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "리소스 갱신 주기(kit.refresh_spec) 설정이 유효하지 않습니다")
		}
	}
	return nil
}

// HTTPRetryConfig Kit API 요청 실패 시 재시도 정책
type HTTPRetryConfig struct {
	MaxRetries int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay time.Duration `json:"retry_delay" validate:"min=0"`
}

// AdminConfig 관리 화면 및 공개 페이지를 제공하는 웹 서버 설정
type AdminConfig struct {
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`

	// SiteURL 관리 화면의 링크(설정 화면, 공개 페이지 보기 등)를 만들 때 사용하는 외부 주소
	SiteURL string `json:"site_url" validate:"omitempty,url"`

	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Users     []UserConfig    `json:"users" validate:"min=1,unique=ID,dive"`

	// NonceSecret 폼/AJAX 요청 보호용 토큰 서명 키
	NonceSecret string        `json:"nonce_secret" validate:"min=32"`
	NonceTTL    time.Duration `json:"nonce_ttl" validate:"min=1m"`
}

// CORSConfig AJAX 엔드포인트의 교차 출처 정책
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다")
		}
	}
	return nil
}

// RateLimitConfig IP 단위 요청 제한
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second" validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst             int     `json:"burst" validate:"required_if=Enabled true,omitempty,min=1"`
}

// UserConfig 관리 화면에 로그인할 수 있는 사용자
type UserConfig struct {
	ID           string   `json:"id" validate:"required"`
	PasswordHash string   `json:"password_hash" validate:"required,bcrypt_hash"`
	Capabilities []string `json:"capabilities" validate:"dive,oneof=manage_options edit_posts"`
}

// NotifierConfig 운영자 알림 채널 설정
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 새 관리자 알림(notice)이 추가될 때 메시지를 보낼 텔레그램 봇 설정
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

// VerifyRecommendations 강제 사항은 아니지만 운영상 권장되지 않는 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string
	if c.Admin.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 관리자 권한이 필요할 수 있습니다", c.Admin.ListenPort))
	}
	if !c.Admin.TLSServer {
		warnings = append(warnings, "TLS가 비활성화되어 있습니다. 관리자 인증 정보가 평문으로 전송됩니다")
	}
	if c.Storage.Driver == StorageMemory {
		warnings = append(warnings, "메모리 저장소를 사용합니다. 프로세스가 종료되면 모든 설정과 게시물이 사라집니다")
	}
	return warnings
}

// HasPostType 설정된 게시물 유형인지 확인합니다.
func (c *AppConfig) HasPostType(postType string) bool {
	for _, t := range c.PostTypes {
		if t == postType {
			return true
		}
	}
	return false
}

// newDefaultConfig 설정 파일이나 환경 변수로 지정되지 않은 항목의 기본값입니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Storage: StorageConfig{
			Driver: StorageFile,
			Path:   "data",
		},
		Kit: KitConfig{
			BaseURL:        "https://api.convertkit.com/v3",
			RequestTimeout: 10 * time.Second,
			HTTPRetry: HTTPRetryConfig{
				MaxRetries: 3,
				RetryDelay: 2 * time.Second,
			},
			RefreshSpec: "0 0 */6 * * *",
		},
		PostTypes: []string{"page", "post"},
		Admin: AdminConfig{
			ListenPort: 8080,
			CORS:       CORSConfig{AllowOrigins: []string{}},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 20,
				Burst:             40,
			},
			NonceTTL: 12 * time.Hour,
		},
	}
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 기본값 → JSON 설정 파일 → 환경 변수 순으로 설정을 덮어써서 AppConfig를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &appConfig,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수명을 koanf 키 경로로 변환합니다.
// 예: CKADMIN_KIT__HTTP_RETRY__MAX_RETRIES -> kit.http_retry.max_retries
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
