// Package editor 게시물 편집기에 구독 폼 블록(단축 코드) 삽입 버튼과 설정 모달을 제공합니다.
package editor

import (
	"context"
	"strconv"
	"strings"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/darkkaiser/convertkit-admin/internal/shortcode"
	"github.com/iancoleman/strcase"
)

// 편집기 종류
const (
	EditorTinyMCE   = "tinymce"
	EditorQuickTags = "quicktags"
)

// 모달 필드 종류
const (
	FieldSelect = "select"
	FieldText   = "text"
	FieldColor  = "color"
)

// Option 선택 필드의 항목
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field 모달에 표시되는 블록 속성 하나
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Value       string   `json:"value,omitempty"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Block 편집기에 삽입할 수 있는 블록
type Block struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// ProgrammaticName 편집기 버튼과 AJAX 요청에서 사용하는 이름입니다. (예: convertkit-formtrigger)
func (b Block) ProgrammaticName() string {
	return "convertkit-" + strcase.ToKebab(b.Name)
}

// ShortcodeTag 블록이 만드는 단축 코드 태그입니다. (예: convertkit_formtrigger)
func (b Block) ShortcodeTag() string {
	return "convertkit_" + strcase.ToSnake(b.Name)
}

// FormLister 선택 필드에 표시할 폼 목록
type FormLister interface {
	Get(ctx context.Context) ([]kit.Form, error)
	NonInline(ctx context.Context) ([]kit.Form, error)
}

// Blocks 편집기에 등록할 블록 목록을 반환합니다. 폼 선택 항목은 캐시된 폼으로 채웁니다.
func Blocks(ctx context.Context, forms FormLister) ([]Block, error) {
	all, err := forms.Get(ctx)
	if err != nil {
		return nil, err
	}
	nonInline, err := forms.NonInline(ctx)
	if err != nil {
		return nil, err
	}

	return []Block{
		{
			Name:        "form",
			Title:       "ConvertKit Form",
			Description: "Displays a ConvertKit Form.",
			Fields: []Field{
				{Name: "form", Label: "Form", Type: FieldSelect, Options: formOptions(all)},
			},
		},
		{
			Name:        "formtrigger",
			Title:       "ConvertKit Form Trigger",
			Description: "Displays a modal, sticky bar or slide in form to display when the button is pressed.",
			Fields: []Field{
				{Name: "form", Label: "Form", Type: FieldSelect, Options: formOptions(nonInline)},
				{Name: "text", Label: "Button Text", Type: FieldText, Value: shortcode.DefaultTriggerText, Description: "The text to display for the button."},
				{Name: "background_color", Label: "Background color", Type: FieldColor},
				{Name: "text_color", Label: "Text color", Type: FieldColor},
			},
		},
	}, nil
}

// Find 프로그램 이름 또는 블록 이름으로 블록을 찾습니다.
func Find(blocks []Block, name string) (Block, bool) {
	for _, b := range blocks {
		if b.Name == name || b.ProgrammaticName() == name {
			return b, true
		}
	}
	return Block{}, false
}

// BuildShortcode values로 블록의 단축 코드를 만듭니다. 필드 순서를 따르며 빈 값은 생략합니다.
//
//	BuildShortcode(formtrigger, map[string]string{"form": "1", "text": "Subscribe"})
//	// [convertkit_formtrigger form="1" text="Subscribe"]
func BuildShortcode(b Block, values map[string]string) string {
	var sb strings.Builder
	sb.WriteString("[" + b.ShortcodeTag())
	for _, f := range b.Fields {
		v := values[f.Name]
		if v == "" {
			continue
		}
		sb.WriteString(" " + f.Name + `="` + strings.ReplaceAll(v, `"`, "&quot;") + `"`)
	}
	sb.WriteString("]")
	return sb.String()
}

func formOptions(forms []kit.Form) []Option {
	options := make([]Option, 0, len(forms))
	for _, f := range forms {
		options = append(options, Option{Value: strconv.FormatInt(f.ID, 10), Label: f.Name})
	}
	return options
}
