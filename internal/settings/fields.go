package settings

import (
	"fmt"
	"strings"

	"github.com/darkkaiser/convertkit-admin/pkg/strutil"
)

// SelectOption 선택 필드의 항목
type SelectOption struct {
	Value string
	Label string
}

// TextField 텍스트 입력 필드 HTML을 반환합니다. description은 HTML로 그대로 출력됩니다.
func (s *Section) TextField(name, value, description string) string {
	out := fmt.Sprintf(`<input type="text" class="regular-text code" id="%s" name="%s[%s]" value="%s" />`,
		strutil.EscapeAttr(name), strutil.EscapeAttr(s.SettingsKey), strutil.EscapeAttr(name), strutil.EscapeAttr(value))
	return out + descriptionHTML(description)
}

// SelectField 선택 필드 HTML을 반환합니다. id는 "<설정 키>_<name>"입니다.
func (s *Section) SelectField(name, value string, options []SelectOption, description string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<select id="%s_%s" name="%s[%s]" size="1">`,
		strutil.EscapeAttr(s.SettingsKey), strutil.EscapeAttr(name), strutil.EscapeAttr(s.SettingsKey), strutil.EscapeAttr(name))

	for _, o := range options {
		selected := ""
		if o.Value == value {
			selected = ` selected="selected"`
		}
		fmt.Fprintf(&sb, `<option value="%s"%s>%s</option>`, strutil.EscapeAttr(o.Value), selected, strutil.EscapeAttr(o.Label))
	}

	sb.WriteString(`</select>`)
	sb.WriteString(descriptionHTML(description))
	return sb.String()
}

// CheckboxField 체크박스 HTML을 반환합니다. label이 있으면 <label>로 감쌉니다.
func (s *Section) CheckboxField(name, value string, checked bool, label, description string) string {
	var sb strings.Builder
	if label != "" {
		fmt.Fprintf(&sb, `<label for="%s">`, strutil.EscapeAttr(name))
	}

	checkedAttr := ""
	if checked {
		checkedAttr = ` checked`
	}
	fmt.Fprintf(&sb, `<input type="checkbox" id="%s" name="%s[%s]" value="%s"%s />`,
		strutil.EscapeAttr(name), strutil.EscapeAttr(s.SettingsKey), strutil.EscapeAttr(name), strutil.EscapeAttr(value), checkedAttr)

	if label != "" {
		fmt.Fprintf(&sb, `%s</label>`, label)
	}

	sb.WriteString(descriptionHTML(description))
	return sb.String()
}

// MaskedValue 마지막 4자를 제외한 나머지를 '*'로 가린 값을 <code>로 감싸서 반환합니다.
// 4자 이하인 값은 전부 가립니다.
//
//	MaskedValue("ABCDEFGH1234", "") // <code>********1234</code>
func (s *Section) MaskedValue(value, description string) string {
	masked := strutil.MaskAllButLast(value, 4, '*')
	return fmt.Sprintf(`<code>%s</code>`, strutil.EscapeAttr(masked)) + descriptionHTML(description)
}

// OutputError 필드 안에 인라인 에러 알림을 반환합니다. message는 HTML로 그대로 출력됩니다.
func (s *Section) OutputError(message string) string {
	return fmt.Sprintf(`<div class="inline notice notice-error"><p>%s</p></div>`, message)
}

func descriptionHTML(description string) string {
	if description == "" {
		return ""
	}
	return `<p class="description">` + description + `</p>`
}
