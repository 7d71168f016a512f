package admin

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAjax_OutputModal(t *testing.T) {
	f := newFixture(t, true)

	modalRequest := func(nonce, editorType, shortcode string) url.Values {
		return url.Values{
			"action":      {editor.ModalAction},
			"nonce":       {nonce},
			"editor_type": {editorType},
			"shortcode":   {shortcode},
		}
	}

	t.Run("모달 HTML", func(t *testing.T) {
		rec := f.post(t, AjaxPath, modalRequest(f.nonce(t, editorNonceAction), editor.EditorQuickTags, "convertkit-formtrigger"))
		require.Equal(t, http.StatusOK, rec.Code)

		doc := parseHTML(t, rec)
		assert.Equal(t, 1, doc.Find("form.convertkit-tinymce-popup").Length())
		assert.Equal(t, 1, doc.Find("#tinymce_modal_form").Length())
		assert.Equal(t, 1, doc.Find("#tinymce_modal_text").Length())
		assert.Equal(t, 1, doc.Find("input.button-primary").Length())

		// 모달형 폼만 선택할 수 있다.
		assert.Equal(t, 1, doc.Find("#tinymce_modal_form option").Length())
	})

	t.Run("보안 토큰 오류", func(t *testing.T) {
		rec := f.post(t, AjaxPath, modalRequest("invalid", editor.EditorQuickTags, "convertkit-form"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "-1", rec.Body.String())
	})

	t.Run("다른 동작의 보안 토큰", func(t *testing.T) {
		rec := f.post(t, AjaxPath, modalRequest(f.nonce(t, addPostAction), editor.EditorQuickTags, "convertkit-form"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "-1", rec.Body.String())
	})

	t.Run("알 수 없는 블록", func(t *testing.T) {
		rec := f.post(t, AjaxPath, modalRequest(f.nonce(t, editorNonceAction), editor.EditorQuickTags, "convertkit-unknown"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("지원하지 않는 편집기", func(t *testing.T) {
		rec := f.post(t, AjaxPath, modalRequest(f.nonce(t, editorNonceAction), "gutenberg", "convertkit-form"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAjax_UnknownAction(t *testing.T) {
	f := newFixture(t, false)

	rec := f.post(t, AjaxPath, url.Values{"action": {"heartbeat"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "0", rec.Body.String())
}

func TestQuickTagsScript(t *testing.T) {
	f := newFixture(t, false)

	rec := f.get(t, QuickTagsPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/javascript"))
	assert.Equal(t, editor.QuickTagsScript, rec.Body.Bytes())
}
