package settings

import (
	"fmt"
	"sync"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
)

// SanitizeFunc 저장 직전 제출 값을 정리합니다.
type SanitizeFunc func(submitted Values) Values

// SectionMeta 설정 화면에 출력되는 섹션 정보
type SectionMeta struct {
	Name     string
	Title    string
	Describe func() string
}

// Field 설정 화면의 한 행입니다. Render는 현재 저장 값을 받아 입력 요소 HTML을 반환합니다.
type Field struct {
	ID     string
	Title  string
	Render func(values Values) string
}

// Registry 설정 섹션, 필드, 설정 키(정리 함수)를 등록받는 레지스트리입니다.
//
// 요청마다 새 Registry를 만들고 섹션을 한 번씩 등록합니다. 같은 설정 키를 두 번 등록하면 에러입니다.
type Registry struct {
	mu       sync.RWMutex
	sections map[string][]SectionMeta
	fields   map[string][]Field
	settings map[string]SanitizeFunc
}

// NewRegistry 빈 레지스트리를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{
		sections: make(map[string][]SectionMeta),
		fields:   make(map[string][]Field),
		settings: make(map[string]SanitizeFunc),
	}
}

// AddSection page 화면에 섹션을 추가합니다.
func (r *Registry) AddSection(page string, meta SectionMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections[page] = append(r.sections[page], meta)
}

// AddField page 화면의 section 섹션에 필드를 추가합니다.
func (r *Registry) AddField(page, section string, f Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := page + "/" + section
	r.fields[key] = append(r.fields[key], f)
}

// RegisterSetting 설정 키와 정리 함수를 등록합니다.
func (r *Registry) RegisterSetting(key string, fn SanitizeFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.settings[key]; exists {
		return apperrors.New(apperrors.Conflict, fmt.Sprintf("설정 키(%s)가 이미 등록되어 있습니다", key))
	}
	r.settings[key] = fn
	return nil
}

// Registered key 설정이 등록되어 있는지 확인합니다.
func (r *Registry) Registered(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.settings[key]
	return ok
}

// Sanitize key 설정의 정리 함수로 제출 값을 정리합니다.
func (r *Registry) Sanitize(key string, submitted Values) (Values, error) {
	r.mu.RLock()
	fn, ok := r.settings[key]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.New(apperrors.NotFound, fmt.Sprintf("등록되지 않은 설정 키입니다: %s", key))
	}
	return fn(submitted), nil
}

// Sections page 화면에 등록된 섹션 목록을 반환합니다.
func (r *Registry) Sections(page string) []SectionMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]SectionMeta(nil), r.sections[page]...)
}

// Fields page 화면 section 섹션의 필드 목록을 반환합니다.
func (r *Registry) Fields(page, section string) []Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Field(nil), r.fields[page+"/"+section]...)
}
