package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const component = "settings"

// GeneralKey 일반 설정 옵션 이름
const GeneralKey = "_wp_convertkit_settings"

// FormNone 폼을 출력하지 않음을 나타내는 값
const FormNone = "0"

// FormLister 선택 필드에 표시할 폼 목록을 제공합니다.
type FormLister interface {
	Get(ctx context.Context) ([]kit.Form, error)
	NonInline(ctx context.Context) ([]kit.Form, error)
}

// GeneralSettings 일반 설정
type GeneralSettings struct {
	APIKey        string `mapstructure:"api_key"`
	APISecret     string `mapstructure:"api_secret"`
	NonInlineForm string `mapstructure:"non_inline_form"`

	// PostTypeForms "<게시물 유형>_form" 키의 값
	PostTypeForms map[string]any `mapstructure:",remain"`
}

// Credentials API 인증 정보를 반환합니다.
func (g *GeneralSettings) Credentials() kit.Credentials {
	return kit.Credentials{APIKey: g.APIKey, APISecret: g.APISecret}
}

// DefaultFormID postType 게시물에 기본으로 출력할 폼 ID를 반환합니다. 없으면 0입니다.
func (g *GeneralSettings) DefaultFormID(postType string) int64 {
	id, err := strconv.ParseInt(fmt.Sprint(g.PostTypeForms[postType+"_form"]), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// GeneralDefaults 일반 설정의 기본값. 게시물 유형마다 "<유형>_form" 키가 추가됩니다.
func GeneralDefaults(postTypes []string) Defaults {
	return DefaultsFunc(func() Values {
		v := Values{
			"api_key":         "",
			"api_secret":      "",
			"non_inline_form": "",
		}
		for _, pt := range postTypes {
			v[pt+"_form"] = FormNone
		}
		return v
	})
}

// General 일반 설정 탭
type General struct {
	forms     FormLister
	postTypes []string

	// locked 설정 파일에 지정된 인증 정보. 비어 있지 않으면 입력 대신 마스킹된 값을 보여줍니다.
	locked kit.Credentials
}

var _ Variant = (*General)(nil)

// NewGeneral 일반 설정 탭을 생성합니다.
func NewGeneral(forms FormLister, postTypes []string, locked kit.Credentials) *General {
	return &General{forms: forms, postTypes: postTypes, locked: locked}
}

func (g *General) Name() string        { return "general" }
func (g *General) Title() string       { return "General Settings" }
func (g *General) TabText() string     { return "General" }
func (g *General) SettingsKey() string { return GeneralKey }

func (g *General) Description() string {
	return `<p>Enter your ConvertKit API credentials, and choose the default form to display on each content type.</p>`
}

func (g *General) Fields(ctx context.Context, s *Section) ([]Field, error) {
	fields := []Field{
		{ID: "api_key", Title: "API Key", Render: func(v Values) string {
			if g.locked.APIKey != "" {
				return s.MaskedValue(g.locked.APIKey, "Your API Key has been defined in the configuration file, and cannot be changed here.")
			}
			return s.TextField("api_key", v.String("api_key"),
				`<a href="https://app.convertkit.com/account_settings/advanced_settings" target="_blank">Get your ConvertKit API Key.</a>`)
		}},
		{ID: "api_secret", Title: "API Secret", Render: func(v Values) string {
			if g.locked.APISecret != "" {
				return s.MaskedValue(g.locked.APISecret, "Your API Secret has been defined in the configuration file, and cannot be changed here.")
			}
			return s.TextField("api_secret", v.String("api_secret"),
				`<a href="https://app.convertkit.com/account_settings/advanced_settings" target="_blank">Get your ConvertKit API Secret.</a>`)
		}},
	}

	forms, err := g.forms.Get(ctx)
	if err != nil {
		// 캐시를 읽지 못해도 인증 정보는 입력할 수 있어야 한다.
		applog.WithComponentAndFields(component, applog.Fields{"error": err}).Warn("폼 목록을 불러오지 못했습니다")
	}
	nonInline, _ := g.forms.NonInline(ctx)

	formOptions := []SelectOption{{Value: FormNone, Label: "None"}}
	for _, f := range forms {
		formOptions = append(formOptions, SelectOption{Value: strconv.FormatInt(f.ID, 10), Label: f.Name})
	}

	caser := cases.Title(language.English)
	for _, pt := range g.postTypes {
		key := pt + "_form"
		label := caser.String(pt)
		fields = append(fields, Field{ID: key, Title: fmt.Sprintf("Default Form (%s)", label), Render: func(v Values) string {
			if len(forms) == 0 {
				return s.OutputError(`No forms exist in ConvertKit. <a href="https://app.convertkit.com/forms/new" target="_blank">Create a form</a>, then refresh this screen.`)
			}
			return s.SelectField(key, v.String(key), formOptions,
				fmt.Sprintf("Select a form above to automatically output below all %s. Individual %s can override this.", label, label))
		}})
	}

	nonInlineOptions := []SelectOption{{Value: "", Label: "None"}}
	for _, f := range nonInline {
		nonInlineOptions = append(nonInlineOptions, SelectOption{Value: strconv.FormatInt(f.ID, 10), Label: f.Name})
	}
	fields = append(fields, Field{ID: "non_inline_form", Title: "Default Form (Site Wide)", Render: func(v Values) string {
		return s.SelectField("non_inline_form", v.String("non_inline_form"), nonInlineOptions,
			"Select a modal, slide in or sticky bar form to display on every public page.")
	}})

	return fields, nil
}
