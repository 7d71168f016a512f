package kit

// Credentials Kit 계정의 API 인증 정보
type Credentials struct {
	APIKey    string
	APISecret string
}

// Valid API Key와 API Secret이 모두 입력되었는지 확인합니다.
func (c Credentials) Valid() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// 폼 표시 형식
const (
	FormatInline    = "inline"
	FormatModal     = "modal"
	FormatSlideIn   = "slide in"
	FormatStickyBar = "sticky bar"
)

// Account /account 응답
type Account struct {
	Name         string `json:"name"`
	PrimaryEmail string `json:"primary_email_address"`
}

// Form 구독 폼
type Form struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Format   string `json:"format"`
	UID      string `json:"uid"`
	EmbedJS  string `json:"embed_js"`
	EmbedURL string `json:"embed_url"`

	// Legacy UID가 없는 구형 폼입니다. 스크립트 대신 구독 양식을 직접 출력합니다.
	Legacy bool `json:"legacy"`
}

// IsInline 본문 안에 출력되는 폼인지 확인합니다. 모달, 슬라이드 인, 스티키 바는 페이지당 하나만 출력됩니다.
func (f Form) IsInline() bool {
	return f.Format == "" || f.Format == FormatInline
}

// LandingPage 랜딩 페이지
type LandingPage struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Tag 구독자 태그
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ResourceID, ResourceName 리소스 캐시가 사용하는 공통 접근자입니다.
func (f Form) ResourceID() int64    { return f.ID }
func (f Form) ResourceName() string { return f.Name }

func (p LandingPage) ResourceID() int64    { return p.ID }
func (p LandingPage) ResourceName() string { return p.Name }

func (t Tag) ResourceID() int64    { return t.ID }
func (t Tag) ResourceName() string { return t.Name }
