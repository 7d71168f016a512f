package editor

import (
	"context"
	_ "embed"
	"html/template"
	"io"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "editor"

// ModalAction 모달 HTML을 요청하는 AJAX 액션 이름
const ModalAction = "convertkit_admin_tinymce_output_modal"

// QuickTagsScript 텍스트 편집기 툴바에 블록 버튼을 등록하는 스크립트입니다.
//
//go:embed assets/quicktags.js
var QuickTagsScript []byte

var modalTemplate = template.Must(template.New("modal").Parse(`<form class="convertkit-tinymce-popup" data-shortcode="{{.Block.ShortcodeTag}}" data-editor-type="{{.EditorType}}">
	<input type="hidden" name="editor_type" value="{{.EditorType}}" />
	<table class="form-table">
{{- range .Block.Fields}}
		<tr>
			<th><label for="tinymce_modal_{{.Name}}">{{.Label}}</label></th>
			<td>
{{- if eq .Type "select"}}
				<select name="{{.Name}}" id="tinymce_modal_{{.Name}}" class="widefat">
{{- range .Options}}
					<option value="{{.Value}}">{{.Label}}</option>
{{- end}}
				</select>
{{- else if eq .Type "color"}}
				<input type="color" name="{{.Name}}" id="tinymce_modal_{{.Name}}" value="{{.Value}}" data-optional="1" />
{{- else}}
				<input type="text" name="{{.Name}}" id="tinymce_modal_{{.Name}}" value="{{.Value}}" class="widefat" />
{{- end}}
{{- if .Description}}
				<p class="description">{{.Description}}</p>
{{- end}}
			</td>
		</tr>
{{- end}}
	</table>
	<div class="convertkit-option buttons has-wp-button">
		<input type="button" name="cancel" value="Cancel" class="button close" />
		<input type="button" name="insert" value="Insert" class="button button-primary right" />
	</div>
</form>
`))

// RenderModal 블록 속성을 입력받는 모달 폼을 w에 씁니다.
// 편집기 종류가 올바르지 않으면 InvalidInput 에러를 반환합니다.
func RenderModal(ctx context.Context, w io.Writer, b Block, editorType string) error {
	if editorType != EditorTinyMCE && editorType != EditorQuickTags {
		return apperrors.New(apperrors.InvalidInput, "지원하지 않는 편집기 종류입니다: "+editorType)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"block":       b.Name,
		"editor_type": editorType,
	}).Debug("블록 모달 렌더링")

	if err := modalTemplate.Execute(w, struct {
		Block      Block
		EditorType string
	}{b, editorType}); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "블록 모달 렌더링에 실패했습니다")
	}
	return nil
}
