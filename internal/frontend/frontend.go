// Package frontend 공개 페이지에 게시물 본문과 구독 폼을 렌더링합니다.
//
// 본문의 단축 코드를 먼저 처리하고, 게시물별 폼 지정 값(-1: 게시물 유형 기본값, 0: 없음, 그 외: 폼 ID)에 따라
// 본문 뒤에 폼을 붙입니다. 게시물에 지정된 폼이 삭제되었으면 게시물 유형 기본 폼을 출력하고,
// 그마저 없으면 에러 없이 출력하지 않습니다.
package frontend

import (
	"context"
	"strconv"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/darkkaiser/convertkit-admin/internal/postmeta"
	"github.com/darkkaiser/convertkit-admin/internal/settings"
	"github.com/darkkaiser/convertkit-admin/internal/shortcode"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
)

const component = "frontend"

// Rendered 렌더링 결과
type Rendered struct {
	Title   string
	Content string
	Footer  string

	// Forms 페이지에 출력된 서로 다른 폼 수
	Forms int
}

// Renderer 공개 페이지 렌더러
type Renderer struct {
	shortcodes *shortcode.Registry
	forms      shortcode.FormFinder
	settings   *settings.Store
	postmeta   *postmeta.Store
}

// NewRenderer Renderer를 생성합니다.
func NewRenderer(shortcodes *shortcode.Registry, forms shortcode.FormFinder, settingsStore *settings.Store, meta *postmeta.Store) *Renderer {
	return &Renderer{shortcodes: shortcodes, forms: forms, settings: settingsStore, postmeta: meta}
}

// Render 게시물을 렌더링합니다.
func (r *Renderer) Render(ctx context.Context, post *store.Post) (*Rendered, error) {
	general, err := r.settings.General(ctx)
	if err != nil {
		return nil, err
	}
	advanced, err := r.settings.Advanced(ctx)
	if err != nil {
		return nil, err
	}

	page := newPage(*advanced)
	content := r.shortcodes.Do(ctx, post.Content, page)

	meta, err := r.postmeta.Get(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	defaultFormID := general.DefaultFormID(post.Type)
	formID := meta.FormID()
	if meta.UsesDefaultForm() {
		formID = defaultFormID
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"post_id":   post.ID,
		"post_type": post.Type,
		"meta_form": meta.Form,
		"form_id":   formID,
	})
	if advanced.Debug {
		logger.Info("게시물 폼 결정")
	}

	form, ok := r.lookup(ctx, formID)
	if !ok && formID > 0 && formID != defaultFormID {
		// 게시물에 지정된 폼이 사라졌으면 게시물 유형 기본 폼을 출력합니다.
		logger.Debug("게시물에 지정된 폼이 존재하지 않아 게시물 유형 기본 폼으로 대체합니다")
		form, ok = r.lookup(ctx, defaultFormID)
	}
	if ok {
		content += page.FormEmbed(ctx, form)
	} else if formID > 0 {
		logger.Debug("게시물에 지정된 폼이 존재하지 않아 출력하지 않습니다")
	}

	if id, err := strconv.ParseInt(general.NonInlineForm, 10, 64); err == nil {
		if form, ok := r.lookup(ctx, id); ok {
			page.FormEmbed(ctx, form)
		}
	}

	return &Rendered{
		Title:   post.Title,
		Content: content,
		Footer:  page.Footer(),
		Forms:   page.RenderedForms(),
	}, nil
}

func (r *Renderer) lookup(ctx context.Context, id int64) (kit.Form, bool) {
	if id <= 0 {
		return kit.Form{}, false
	}
	form, ok, err := r.forms.ByID(ctx, id)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"form_id": id, "error": err}).Warn("폼 캐시 조회 실패")
		return kit.Form{}, false
	}
	return form, ok
}
