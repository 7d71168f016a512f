package shortcode

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/stretchr/testify/assert"
)

var modalForm = kit.Form{
	ID:       2780977,
	Name:     "Modal Form",
	Format:   kit.FormatModal,
	UID:      "397e876257",
	EmbedJS:  "https://example.ck.page/397e876257/index.js",
	EmbedURL: "https://example.ck.page/397e876257",
}

type stubForms map[int64]kit.Form

func (s stubForms) ByID(_ context.Context, id int64) (kit.Form, bool, error) {
	f, ok := s[id]
	return f, ok, nil
}

type stubEmbedder struct{}

func (stubEmbedder) FormEmbed(_ context.Context, f kit.Form) string {
	return fmt.Sprintf(`<form data-sv-form="%d"></form>`, f.ID)
}

func newRegistry() *Registry {
	r := NewRegistry()
	RegisterConvertKit(r, stubForms{modalForm.ID: modalForm})
	return r
}

func TestParseAttrs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Attrs
	}{
		{name: "큰따옴표", input: ` form="1" text="Sign up"`, want: Attrs{"form": "1", "text": "Sign up"}},
		{name: "작은따옴표", input: ` text_color='red" onmouseover="alert(1)"'`, want: Attrs{"text_color": `red" onmouseover="alert(1)"`}},
		{name: "따옴표 없음", input: ` form=1 TEXT=Go`, want: Attrs{"form": "1", "text": "Go"}},
		{name: "이름 없는 값", input: `=1 "a b" 'c'`, want: Attrs{"0": "=1", "1": "a b", "2": "c"}},
		{name: "빈 값", input: ``, want: Attrs{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAttrs(tt.input))
		})
	}
}

func TestRegistry_Do(t *testing.T) {
	r := NewRegistry()
	r.Add("echo", func(c Call) string { return "<" + c.Attrs.Get("v") + c.Content + ">" })

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "단축 코드 없음", input: "plain [text]", want: "plain [text]"},
		{name: "속성", input: `a [echo v="x"] b`, want: "a <x> b"},
		{name: "자체 닫힘", input: `[echo v=1 /]`, want: "<1>"},
		{name: "본문 포함", input: `[echo v=1]body[/echo]`, want: "<1body>"},
		{name: "이스케이프", input: `[[echo v=1]]`, want: `[echo v=1]`},
		{name: "태그 이름이 더 긴 경우는 다른 태그", input: `[echoes v=1]`, want: `[echoes v=1]`},
		{name: "닫히지 않은 괄호", input: `[echo v=1`, want: `[echo v=1`},
		{name: "여러 개", input: `[echo v=a][echo v=b]`, want: "<a><b>"},
		{name: "속성 안의 여는 괄호", input: `a [echo v=[x] b`, want: "a <[x> b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Do(context.Background(), tt.input, nil))
		})
	}
}

func TestFormHandler(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	assert.Equal(t, `<form data-sv-form="2780977"></form>`, r.Do(ctx, `[convertkit_form form="2780977"]`, stubEmbedder{}))
	assert.Equal(t, `<form data-sv-form="2780977"></form>`, r.Do(ctx, `[convertkit id="2780977"]`, stubEmbedder{}))
	assert.Empty(t, r.Do(ctx, `[convertkit_form form="999"]`, stubEmbedder{}), "존재하지 않는 폼")
	assert.Empty(t, r.Do(ctx, `[convertkit_form]`, stubEmbedder{}))
}

func TestFormTriggerHandler(t *testing.T) {
	r := newRegistry()
	ctx := context.Background()

	t.Run("기본 문구", func(t *testing.T) {
		out := r.Do(ctx, `[convertkit_formtrigger form="2780977"]`, nil)
		assert.Equal(t, `<a href="https://example.ck.page/397e876257" class="convertkit-formtrigger wp-block-button__link" data-formkit-toggle="397e876257">Subscribe</a>`, out)
	})

	t.Run("문구와 색상", func(t *testing.T) {
		out := r.Do(ctx, `[convertkit_formtrigger form="2780977" text="Sign up" background_color="#ee1616" text_color="#1212c0"]`, stubEmbedder{})
		assert.Contains(t, out, `style="background-color:#ee1616;color:#1212c0"`)
		assert.Contains(t, out, `>Sign up</a>`)
		assert.Contains(t, out, `<form data-sv-form="2780977"></form>`)
	})

	t.Run("속성 값 이스케이프", func(t *testing.T) {
		out := r.Do(ctx, `[convertkit_formtrigger form="2780977" text='Subscribe' text_color='red" onmouseover="alert(1)"']`, nil)
		assert.Contains(t, out, `style="color:red&quot; onmouseover=&quot;alert(1)&quot;"`)
		assert.NotContains(t, out, `style="color:red" onmouseover="alert(1)""`)
		assert.NotContains(t, out, `onmouseover="`)
	})

	t.Run("잘못된 폼 속성은 아무것도 출력하지 않는다", func(t *testing.T) {
		assert.Empty(t, r.Do(ctx, `[convertkit_formtrigger=1]`, stubEmbedder{}))
		assert.Empty(t, strings.TrimSpace(r.Do(ctx, `[convertkit_formtrigger form="abc"]`, stubEmbedder{})))
	})
}
