package settings

import "context"

// AdvancedKey 고급 설정 옵션 이름
const AdvancedKey = "_wp_convertkit_settings_advanced"

// AdvancedSettings 고급 설정
type AdvancedSettings struct {
	Debug     bool `mapstructure:"debug"`
	NoScripts bool `mapstructure:"no_scripts"`
	NoCSS     bool `mapstructure:"no_css"`
}

// AdvancedDefaults 고급 설정의 기본값
func AdvancedDefaults() Defaults {
	return DefaultsFunc(func() Values {
		return Values{"debug": "", "no_scripts": "", "no_css": ""}
	})
}

// Advanced 고급 설정 탭
type Advanced struct{}

var _ Variant = Advanced{}

func (Advanced) Name() string        { return "advanced" }
func (Advanced) Title() string       { return "Advanced" }
func (Advanced) TabText() string     { return "" }
func (Advanced) SettingsKey() string { return AdvancedKey }

func (Advanced) Description() string {
	return `<p>Advanced settings that change how forms are output on the public site.</p>`
}

func (Advanced) Fields(_ context.Context, s *Section) ([]Field, error) {
	checkbox := func(name, label, description string) Field {
		return Field{ID: name, Title: label, Render: func(v Values) string {
			return s.CheckboxField(name, "on", v.Bool(name), label, description)
		}}
	}

	return []Field{
		checkbox("debug", "Debug", "Log debug information when rendering forms."),
		checkbox("no_scripts", "Disable JavaScript", "Do not output form scripts on the public site."),
		checkbox("no_css", "Disable CSS", "Prevent forms from loading their own CSS."),
	}, nil
}
