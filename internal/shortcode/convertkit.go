package shortcode

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/darkkaiser/convertkit-admin/pkg/strutil"
)

const component = "shortcode"

// 단축 코드 태그
const (
	TagForm        = "convertkit_form"
	TagFormLegacy  = "convertkit"
	TagFormTrigger = "convertkit_formtrigger"
)

// DefaultTriggerText 폼 트리거 버튼의 기본 문구
const DefaultTriggerText = "Subscribe"

// FormFinder 캐시된 폼을 ID로 찾습니다.
type FormFinder interface {
	ByID(ctx context.Context, id int64) (kit.Form, bool, error)
}

// RegisterConvertKit convertkit_form, convertkit, convertkit_formtrigger 단축 코드를 등록합니다.
func RegisterConvertKit(r *Registry, forms FormFinder) {
	form := FormHandler(forms)
	r.Add(TagForm, form)
	r.Add(TagFormLegacy, form)
	r.Add(TagFormTrigger, FormTriggerHandler(forms))
}

// FormHandler [convertkit_form form="<id>"] 를 폼 임베드로 바꿉니다. 구형 id 속성도 받습니다.
func FormHandler(forms FormFinder) Handler {
	return func(call Call) string {
		id := call.Attrs.Get("form")
		if id == "" {
			id = call.Attrs.Get("id")
		}

		form, ok := findForm(call.Ctx, forms, call.Tag, id)
		if !ok || call.Embedder == nil {
			return ""
		}
		return call.Embedder.FormEmbed(call.Ctx, form)
	}
}

// FormTriggerHandler [convertkit_formtrigger form="<id>" text="" background_color="" text_color=""] 를
// 폼을 여는 버튼과 폼 임베드로 바꿉니다. 모든 속성 값은 이스케이프됩니다.
func FormTriggerHandler(forms FormFinder) Handler {
	return func(call Call) string {
		form, ok := findForm(call.Ctx, forms, call.Tag, call.Attrs.Get("form"))
		if !ok {
			return ""
		}

		var styles []string
		if bg := call.Attrs.Get("background_color"); bg != "" {
			styles = append(styles, "background-color:"+bg)
		}
		if tc := call.Attrs.Get("text_color"); tc != "" {
			styles = append(styles, "color:"+tc)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, `<a href="%s" class="convertkit-formtrigger wp-block-button__link"`, strutil.EscapeAttr(form.EmbedURL))
		if len(styles) > 0 {
			fmt.Fprintf(&sb, ` style="%s"`, strutil.EscapeAttr(strings.Join(styles, ";")))
		}
		fmt.Fprintf(&sb, ` data-formkit-toggle="%s">%s</a>`,
			strutil.EscapeAttr(form.UID), strutil.EscapeAttr(call.Attrs.GetOr("text", DefaultTriggerText)))

		if call.Embedder != nil {
			sb.WriteString(call.Embedder.FormEmbed(call.Ctx, form))
		}
		return sb.String()
	}
}

// findForm 잘못되었거나 삭제된 폼은 에러 없이 건너뜁니다.
func findForm(ctx context.Context, forms FormFinder, tag, rawID string) (kit.Form, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		applog.WithComponentAndFields(component, applog.Fields{"tag": tag, "form": rawID}).Debug("폼 ID가 올바르지 않아 출력하지 않습니다")
		return kit.Form{}, false
	}

	form, ok, err := forms.ByID(ctx, id)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"tag": tag, "form": id, "error": err}).Warn("폼 캐시 조회 실패")
		return kit.Form{}, false
	}
	if !ok {
		applog.WithComponentAndFields(component, applog.Fields{"tag": tag, "form": id}).Debug("존재하지 않는 폼이어서 출력하지 않습니다")
	}
	return form, ok
}
