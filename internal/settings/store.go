package settings

import (
	"context"
	"fmt"

	"github.com/darkkaiser/convertkit-admin/internal/hook"
	"github.com/darkkaiser/convertkit-admin/internal/kit"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/store"
)

// Store 설정 옵션을 읽고 씁니다.
type Store struct {
	options   store.Options
	postTypes []string
	locked    kit.Credentials
}

// NewStore 설정 저장소를 생성합니다. locked는 설정 파일에 지정된 API 인증 정보입니다.
func NewStore(options store.Options, postTypes []string, locked kit.Credentials) *Store {
	return &Store{options: options, postTypes: postTypes, locked: locked}
}

// DefaultsFor key 설정의 기본값을 반환합니다.
func (s *Store) DefaultsFor(key string) (Defaults, error) {
	switch key {
	case GeneralKey:
		return GeneralDefaults(s.postTypes), nil
	case AdvancedKey:
		return AdvancedDefaults(), nil
	}
	return nil, apperrors.New(apperrors.NotFound, fmt.Sprintf("알 수 없는 설정 키입니다: %s", key))
}

// Values 저장된 값을 기본값과 합쳐서 반환합니다.
func (s *Store) Values(ctx context.Context, key string) (Values, error) {
	defaults, err := s.DefaultsFor(key)
	if err != nil {
		return nil, err
	}

	var stored Values
	if err := s.options.GetOption(ctx, key, &stored); err != nil && !apperrors.Is(err, apperrors.NotFound) {
		return nil, err
	}
	return stored.Merge(defaults.Defaults()), nil
}

// Save 정리된 값을 저장합니다.
func (s *Store) Save(ctx context.Context, key string, v Values) error {
	if err := s.options.UpdateOption(ctx, key, v); err != nil {
		return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정(%s)을 저장하지 못했습니다", key))
	}
	return nil
}

// General 일반 설정을 반환합니다. 설정 파일의 인증 정보가 저장된 값보다 우선합니다.
func (s *Store) General(ctx context.Context) (*GeneralSettings, error) {
	v, err := s.Values(ctx, GeneralKey)
	if err != nil {
		return nil, err
	}

	var g GeneralSettings
	if err := decode(v, &g); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "일반 설정 값을 해석하지 못했습니다")
	}
	if s.locked.APIKey != "" {
		g.APIKey = s.locked.APIKey
	}
	if s.locked.APISecret != "" {
		g.APISecret = s.locked.APISecret
	}
	return &g, nil
}

// Advanced 고급 설정을 반환합니다.
func (s *Store) Advanced(ctx context.Context) (*AdvancedSettings, error) {
	v, err := s.Values(ctx, AdvancedKey)
	if err != nil {
		return nil, err
	}

	var a AdvancedSettings
	if err := decode(v, &a); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "고급 설정 값을 해석하지 못했습니다")
	}
	return &a, nil
}

// Credentials 현재 사용할 API 인증 정보를 반환합니다.
func (s *Store) Credentials(ctx context.Context) (kit.Credentials, error) {
	g, err := s.General(ctx)
	if err != nil {
		return kit.Credentials{}, err
	}
	return g.Credentials(), nil
}

// Page 설정 화면 한 번의 요청에서 사용하는 레지스트리와 탭 목록입니다.
type Page struct {
	Registry *Registry
	Sections []*Section
}

// NewPage 새 레지스트리에 일반, 고급 탭을 등록합니다.
func (s *Store) NewPage(ctx context.Context, forms FormLister, hooks *hook.Registry) (*Page, error) {
	registry := NewRegistry()

	general, err := NewSection(ctx, NewGeneral(forms, s.postTypes, s.locked), GeneralDefaults(s.postTypes), registry, hooks)
	if err != nil {
		return nil, err
	}
	advanced, err := NewSection(ctx, Advanced{}, AdvancedDefaults(), registry, hooks)
	if err != nil {
		return nil, err
	}

	return &Page{Registry: registry, Sections: []*Section{general, advanced}}, nil
}

// Section name 탭을 반환합니다. 없으면 첫 번째 탭입니다.
func (p *Page) Section(name string) *Section {
	for _, s := range p.Sections {
		if s.Name == name {
			return s
		}
	}
	return p.Sections[0]
}
