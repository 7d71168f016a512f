// Package settings 플러그인 설정 화면의 탭(섹션)과 필드, 저장 전 정리(sanitize) 규칙을 정의합니다.
//
// 각 탭은 Variant 구현(General, Advanced)이며, Section이 공통 동작(등록, 정리, 렌더링, 필드 빌더)을 제공합니다.
package settings

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/darkkaiser/convertkit-admin/internal/hook"
)

// Variant 설정 탭 하나를 정의합니다.
type Variant interface {
	Name() string
	Title() string

	// TabText 탭에 표시할 문구입니다. 빈 문자열이면 Title을 사용합니다.
	TabText() string

	// SettingsKey 값이 저장되는 옵션 이름
	SettingsKey() string

	// Fields 섹션에 등록할 필드 목록. 필드 빌더는 s를 통해 사용합니다.
	Fields(ctx context.Context, s *Section) ([]Field, error)

	// Description 섹션 제목 아래에 출력할 HTML
	Description() string
}

// Defaults 설정 키가 가져야 할 기본값을 제공합니다.
type Defaults interface {
	Defaults() Values
}

// DefaultsFunc 함수를 Defaults로 사용합니다.
type DefaultsFunc func() Values

func (f DefaultsFunc) Defaults() Values { return f() }

// Section 설정 탭의 공통 동작입니다. 요청마다 새로 생성됩니다.
type Section struct {
	Name        string
	Title       string
	TabText     string
	SettingsKey string

	variant  Variant
	defaults Defaults
	registry *Registry
	hooks    *hook.Registry
}

// NewSection 섹션을 생성하고 레지스트리에 등록합니다.
func NewSection(ctx context.Context, v Variant, defaults Defaults, registry *Registry, hooks *hook.Registry) (*Section, error) {
	s := &Section{
		Name:        v.Name(),
		Title:       v.Title(),
		TabText:     v.TabText(),
		SettingsKey: v.SettingsKey(),
		variant:     v,
		defaults:    defaults,
		registry:    registry,
		hooks:       hooks,
	}
	if s.TabText == "" {
		s.TabText = s.Title
	}

	if err := s.registerSection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// registerSection 섹션 정보, 필드, 설정 키와 정리 함수를 등록합니다.
func (s *Section) registerSection(ctx context.Context) error {
	s.registry.AddSection(s.SettingsKey, SectionMeta{
		Name:     s.Name,
		Title:    s.Title,
		Describe: s.variant.Description,
	})

	fields, err := s.variant.Fields(ctx, s)
	if err != nil {
		return err
	}
	for _, f := range fields {
		s.registry.AddField(s.SettingsKey, s.Name, f)
	}

	return s.registry.RegisterSetting(s.SettingsKey, s.SanitizeSettings)
}

// Defaults 기본값을 반환합니다.
func (s *Section) Defaults() Values {
	return s.defaults.Defaults()
}

// SanitizeSettings 기본값 위에 제출 값을 덮어씁니다. 제출되지 않은 키는 기본값으로 채워지고
// 알 수 없는 키도 그대로 유지됩니다. 타입 변환이나 범위 검사는 하지 않습니다.
func (s *Section) SanitizeSettings(submitted Values) Values {
	return submitted.Merge(s.defaults.Defaults())
}

// Render 섹션 필드, 숨김 필드(option_page, action, _wpnonce), 저장 버튼을 출력합니다.
// 전후로 convertkit_settings_base_render_before/after 액션을 실행합니다.
func (s *Section) Render(e hook.Event, w io.Writer, values Values, nonce string) error {
	if err := s.hooks.Do(w, hook.SettingsRenderBefore, e); err != nil {
		return err
	}

	if err := s.renderSections(w, values); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w,
		`<input type="hidden" name="option_page" value="%s" /><input type="hidden" name="action" value="update" /><input type="hidden" id="_wpnonce" name="_wpnonce" value="%s" />`,
		html.EscapeString(s.SettingsKey), html.EscapeString(nonce)); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `<p class="submit"><input type="submit" name="submit" id="submit" class="button button-primary" value="Save Changes" /></p>`); err != nil {
		return err
	}

	return s.hooks.Do(w, hook.SettingsRenderAfter, e)
}

func (s *Section) renderSections(w io.Writer, values Values) error {
	for _, meta := range s.registry.Sections(s.SettingsKey) {
		if _, err := fmt.Fprintf(w, "<h2>%s</h2>", html.EscapeString(meta.Title)); err != nil {
			return err
		}
		if meta.Describe != nil {
			if _, err := io.WriteString(w, meta.Describe()); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table class="form-table" role="presentation">`); err != nil {
			return err
		}
		for _, f := range s.registry.Fields(s.SettingsKey, meta.Name) {
			if _, err := fmt.Fprintf(w, `<tr><th scope="row">%s</th><td>%s</td></tr>`, html.EscapeString(f.Title), f.Render(values)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</table>`); err != nil {
			return err
		}
	}
	return nil
}
