// Package setup 처음 연동하는 사용자를 위한 설정 마법사 화면을 제공합니다.
package setup

import (
	"context"
	"html/template"
	"io"
	"strconv"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/settings"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "setup"

// 마법사 단계
const (
	StepFormSelection = 3

	// PostsField 게시물에 표시할 기본 폼을 선택하는 필드 이름
	PostsField = "default_form_posts"

	createFormURL = "https://app.convertkit.com/forms/new?format=inline"
	stepURL       = "admin.php?page=convertkit-setup&step=3"
)

// FormLister 계정에 등록된 폼 목록
type FormLister interface {
	Get(ctx context.Context) ([]kit.Form, error)
}

// SettingsStore 선택한 폼을 일반 설정에 저장합니다.
type SettingsStore interface {
	Values(ctx context.Context, key string) (settings.Values, error)
	Save(ctx context.Context, key string, v settings.Values) error
}

var formSelectionTemplate = template.Must(template.New("step3").Parse(`{{if .HasForms -}}
<h1>Display an email capture form</h1>
<p>To capture email leads, you need to display a ConvertKit form on your site, using the options below.</p>
<hr />
<div>
	<label for="{{.Field}}">Which form would you like to display on your individual Posts?</label>
	<select name="{{.Field}}" id="wp-convertkit-form-posts" class="convertkit-select2">
{{- range .Forms}}
		<option value="{{.ID}}">{{.Name}}</option>
{{- end}}
	</select>
	<p class="description">The selected form will be displayed after the content of individual Posts</p>
</div>
{{- else -}}
<h1>Create your first ConvertKit Form</h1>
<p>To capture email leads, you first need to create a form in ConvertKit. Click the button below to get started.</p>
<a href="{{.CreateURL}}" target="_blank" class="button button-primary">Create form</a>
<p>Not sure how to do this? Follow the video below.</p>
<a href="{{.StepURL}}" class="button button-primary">I've created a form in ConvertKit.</a>
{{- end}}
`))

// Wizard 설정 마법사
type Wizard struct {
	forms    FormLister
	settings SettingsStore
}

func NewWizard(forms FormLister, settings SettingsStore) *Wizard {
	return &Wizard{forms: forms, settings: settings}
}

// RenderFormSelection 폼 선택 단계를 w에 씁니다.
// 폼이 하나도 없으면 폼을 만드는 방법과 이 단계로 돌아오는 링크를 안내합니다.
func (wz *Wizard) RenderFormSelection(ctx context.Context, w io.Writer) error {
	forms, err := wz.forms.Get(ctx)
	if err != nil {
		return err
	}

	data := struct {
		HasForms  bool
		Field     string
		Forms     []kit.Form
		CreateURL string
		StepURL   string
	}{len(forms) > 0, PostsField, forms, createFormURL, stepURL}

	if err := formSelectionTemplate.Execute(w, data); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "설정 마법사 화면 렌더링에 실패했습니다")
	}
	return nil
}

// SubmitFormSelection 선택한 폼을 'post' 유형의 기본 폼으로 저장합니다.
func (wz *Wizard) SubmitFormSelection(ctx context.Context, formID string) error {
	id, err := strconv.ParseInt(formID, 10, 64)
	if err != nil || id < 0 {
		return apperrors.New(apperrors.InvalidInput, "폼 ID가 올바르지 않습니다: "+formID)
	}

	values, err := wz.settings.Values(ctx, settings.GeneralKey)
	if err != nil {
		return err
	}
	values["post_form"] = strconv.FormatInt(id, 10)
	if err := wz.settings.Save(ctx, settings.GeneralKey, values); err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"form_id": id,
	}).Info("게시물 기본 폼이 저장되었습니다")

	return nil
}
