package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/convertkit-admin/internal/kit"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/shortcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubForms struct {
	all []kit.Form
	err error
}

func (s stubForms) Get(context.Context) ([]kit.Form, error) { return s.all, s.err }

func (s stubForms) NonInline(context.Context) ([]kit.Form, error) {
	var out []kit.Form
	for _, f := range s.all {
		if !f.IsInline() {
			out = append(out, f)
		}
	}
	return out, s.err
}

var testForms = stubForms{all: []kit.Form{
	{ID: 1, Name: "Inline Form", Format: kit.FormatInline, UID: "aaa"},
	{ID: 2780977, Name: "Modal Form", Format: kit.FormatModal, UID: "397e876257", EmbedURL: "https://example.ck.page/397e876257"},
}}

func mustBlocks(t *testing.T) []Block {
	t.Helper()
	blocks, err := Blocks(context.Background(), testForms)
	require.NoError(t, err)
	return blocks
}

func TestBlock_Names(t *testing.T) {
	t.Parallel()

	b := Block{Name: "formtrigger"}
	assert.Equal(t, "convertkit-formtrigger", b.ProgrammaticName())
	assert.Equal(t, "convertkit_formtrigger", b.ShortcodeTag())

	b = Block{Name: "landingPage"}
	assert.Equal(t, "convertkit-landing-page", b.ProgrammaticName())
	assert.Equal(t, "convertkit_landing_page", b.ShortcodeTag())
}

func TestBlocks(t *testing.T) {
	t.Parallel()

	blocks := mustBlocks(t)
	require.Len(t, blocks, 2)

	form, ok := Find(blocks, "form")
	require.True(t, ok)
	assert.Len(t, form.Fields[0].Options, 2)

	trigger, ok := Find(blocks, "convertkit-formtrigger")
	require.True(t, ok)
	require.Len(t, trigger.Fields[0].Options, 1, "폼 트리거는 인라인이 아닌 폼만 선택할 수 있다")
	assert.Equal(t, Option{Value: "2780977", Label: "Modal Form"}, trigger.Fields[0].Options[0])
	assert.Equal(t, shortcode.DefaultTriggerText, trigger.Fields[1].Value)

	_, ok = Find(blocks, "unknown")
	assert.False(t, ok)

	_, err := Blocks(context.Background(), stubForms{err: apperrors.New(apperrors.System, "boom")})
	assert.Error(t, err)
}

func TestBuildShortcode(t *testing.T) {
	t.Parallel()

	trigger, _ := Find(mustBlocks(t), "formtrigger")

	tests := []struct {
		name   string
		values map[string]string
		want   string
	}{
		{
			name:   "기본 문구",
			values: map[string]string{"form": "2780977", "text": "Subscribe"},
			want:   `[convertkit_formtrigger form="2780977" text="Subscribe"]`,
		},
		{
			name:   "빈 문구는 생략",
			values: map[string]string{"form": "2780977", "text": ""},
			want:   `[convertkit_formtrigger form="2780977"]`,
		},
		{
			name:   "필드 순서 유지",
			values: map[string]string{"text_color": "#fff", "form": "1", "background_color": "#000"},
			want:   `[convertkit_formtrigger form="1" background_color="#000" text_color="#fff"]`,
		},
		{
			name:   "따옴표 이스케이프",
			values: map[string]string{"form": "1", "text": `Say "hi"`},
			want:   `[convertkit_formtrigger form="1" text="Say &quot;hi&quot;"]`,
		},
		{
			name:   "등록되지 않은 필드는 무시",
			values: map[string]string{"form": "1", "onclick": "x"},
			want:   `[convertkit_formtrigger form="1"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildShortcode(trigger, tt.values))
		})
	}
}

func TestBuildShortcode_RecognizedByShortcodeRegistry(t *testing.T) {
	t.Parallel()

	r := shortcode.NewRegistry()
	for _, b := range mustBlocks(t) {
		r.Add(b.ShortcodeTag(), func(c shortcode.Call) string { return "<" + c.Tag + ":" + c.Attrs.Get("form") + ">" })
		assert.Equal(t, "<"+b.ShortcodeTag()+":7>", r.Do(context.Background(), BuildShortcode(b, map[string]string{"form": "7"}), nil))
	}
}

func TestRenderModal(t *testing.T) {
	t.Parallel()

	trigger, _ := Find(mustBlocks(t), "formtrigger")

	var buf bytes.Buffer
	require.NoError(t, RenderModal(context.Background(), &buf, trigger, EditorQuickTags))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	form := doc.Find("form.convertkit-tinymce-popup")
	require.Equal(t, 1, form.Length())
	tag, _ := form.Attr("data-shortcode")
	assert.Equal(t, "convertkit_formtrigger", tag)

	for _, f := range []string{"form", "text", "background_color", "text_color"} {
		assert.Equal(t, 1, doc.Find("#tinymce_modal_"+f).Length(), f)
	}
	assert.Equal(t, 1, doc.Find("select#tinymce_modal_form option[value='2780977']").Length())
	text, _ := doc.Find("#tinymce_modal_text").Attr("value")
	assert.Equal(t, "Subscribe", text)

	insert := doc.Find("input.button-primary")
	require.Equal(t, 1, insert.Length())
	v, _ := insert.Attr("value")
	assert.Equal(t, "Insert", v)
}

func TestRenderModal_EscapesLabels(t *testing.T) {
	t.Parallel()

	b := Block{Name: "form", Fields: []Field{{
		Name: "form", Label: "Form", Type: FieldSelect,
		Options: []Option{{Value: "1", Label: `<script>alert(1)</script>`}},
	}}}

	var buf bytes.Buffer
	require.NoError(t, RenderModal(context.Background(), &buf, b, EditorTinyMCE))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderModal_InvalidEditorType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderModal(context.Background(), &buf, Block{Name: "form"}, "gutenberg")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Zero(t, buf.Len())
}

func TestScriptSettings(t *testing.T) {
	t.Parallel()

	data, err := ScriptSettings(mustBlocks(t), "/wp-admin/admin-ajax.php", "token")
	require.NoError(t, err)

	var got scriptSettings
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "token", got.Nonce)
	require.Len(t, got.Blocks, 2)
	assert.Equal(t, "convertkit-formtrigger", got.Blocks[1].ProgrammaticName)
	assert.Equal(t, "convertkit_formtrigger", got.Blocks[1].ShortcodeTag)
}

func TestQuickTagsScript(t *testing.T) {
	t.Parallel()

	script := string(QuickTagsScript)
	assert.True(t, strings.Contains(script, ModalAction))
	assert.Contains(t, script, "qt_content_")
	assert.Contains(t, script, "convertkit-quicktags-modal")
}
