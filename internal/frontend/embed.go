package frontend

import (
	"context"
	"fmt"
	"strings"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/darkkaiser/convertkit-admin/internal/settings"
	"github.com/darkkaiser/convertkit-admin/pkg/strutil"
)

// Page 공개 페이지 한 번의 렌더링 상태입니다. 같은 폼은 페이지당 한 번만 출력합니다.
type Page struct {
	advanced settings.AdvancedSettings

	rendered map[int64]bool
	footer   strings.Builder
}

func newPage(advanced settings.AdvancedSettings) *Page {
	return &Page{advanced: advanced, rendered: make(map[int64]bool)}
}

// FormEmbed form의 임베드 마크업을 반환합니다.
//
// 이미 출력된 폼이면 빈 문자열입니다. 인라인이 아닌 폼(모달, 슬라이드 인, 스티키 바)과 스크립트는
// 페이지 하단(Footer)에 모이고 여기서는 빈 문자열을 반환합니다.
func (p *Page) FormEmbed(_ context.Context, form kit.Form) string {
	if p.rendered[form.ID] {
		return ""
	}
	p.rendered[form.ID] = true

	var markup string
	if form.Legacy {
		markup = p.legacyMarkup(form)
	} else {
		markup = p.formMarkup(form)
	}

	if !form.Legacy && form.EmbedJS != "" && !p.advanced.NoScripts {
		fmt.Fprintf(&p.footer, `<script async data-uid="%s" src="%s"></script>`, strutil.EscapeAttr(form.UID), strutil.EscapeAttr(form.EmbedJS))
	}

	if !form.IsInline() {
		p.footer.WriteString(markup)
		return ""
	}
	return markup
}

// RenderedForms 출력된 폼 수
func (p *Page) RenderedForms() int {
	return len(p.rendered)
}

// Footer 페이지 하단에 출력할 마크업
func (p *Page) Footer() string {
	return p.footer.String()
}

func (p *Page) noCSSAttr() string {
	if p.advanced.NoCSS {
		return ` data-no-css="1"`
	}
	return ""
}

func (p *Page) formMarkup(f kit.Form) string {
	format := f.Format
	if format == "" {
		format = kit.FormatInline
	}

	return fmt.Sprintf(`<form data-sv-form="%d" data-uid="%s" data-format="%s" class="formkit-form"%s action="https://app.convertkit.com/forms/%d/subscriptions" method="post">`+
		`<div data-element="fields"><input class="formkit-input" name="email_address" aria-label="Email Address" placeholder="Email Address" required type="email" />`+
		`<button data-element="submit" class="formkit-submit">Subscribe</button></div></form>`,
		f.ID, strutil.EscapeAttr(f.UID), strutil.EscapeAttr(format), p.noCSSAttr(), f.ID)
}

func (p *Page) legacyMarkup(f kit.Form) string {
	return fmt.Sprintf(`<div class="ck_form_container ck_inline" data-ck-version="7"%s>`+
		`<form id="ck_subscribe_form" class="ck_subscribe_form" action="https://api.convertkit.com/landing_pages/%d/subscribe" data-remote="true">`+
		`<input type="hidden" name="id" value="%d" id="landing_page_id" />`+
		`<p class="ck_errorArea"></p>`+
		`<div class="ck_control_group"><label class="ck_label" for="ck_emailField">Email Address</label>`+
		`<input type="email" name="email" class="ck_email_address" id="ck_emailField" placeholder="Email Address" required /></div>`+
		`<button class="subscribe_button ck_subscribe_button btn fields" id="ck_subscribe_button">Subscribe</button>`+
		`</form></div>`,
		p.noCSSAttr(), f.ID, f.ID)
}
