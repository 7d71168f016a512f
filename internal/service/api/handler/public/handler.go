// Package public 발행된 게시물을 공개 페이지로 렌더링합니다.
package public

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/darkkaiser/convertkit-admin/internal/frontend"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<title>{{.Title}}</title>
</head>
<body class="{{.Type}}-template-default single single-{{.Type}}">
<article id="post-{{.ID}}" class="{{.Type}} type-{{.Type}} status-publish">
	<header class="entry-header"><h1 class="entry-title">{{.Title}}</h1></header>
	<div class="entry-content">
{{.Content}}
	</div>
</article>
{{.Footer}}
</body>
</html>
`))

// PostFinder Slug로 게시물을 찾습니다.
type PostFinder interface {
	GetPostBySlug(ctx context.Context, slug string) (*store.Post, error)
}

// PageRenderer 게시물 본문에 단축 코드와 폼을 적용합니다.
type PageRenderer interface {
	Render(ctx context.Context, post *store.Post) (*frontend.Rendered, error)
}

// Handler 공개 페이지 핸들러
type Handler struct {
	posts    PostFinder
	renderer PageRenderer
}

// NewHandler Handler를 생성합니다.
func NewHandler(posts PostFinder, renderer PageRenderer) *Handler {
	return &Handler{posts: posts, renderer: renderer}
}

// Page 발행된 게시물을 렌더링합니다. 없거나 발행되지 않은 게시물은 404입니다.
//
//	GET /:slug
func (h *Handler) Page(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	post, err := h.posts.GetPostBySlug(ctx, slug)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return httputil.NewNotFoundError(constants.ErrMsgNotFound)
		}
		return err
	}
	if !post.IsPublished() {
		return httputil.NewNotFoundError(constants.ErrMsgNotFound)
	}

	rendered, err := h.renderer.Render(ctx, post)
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentPublicHandler, applog.Fields{
		"post_id": post.ID,
		"slug":    slug,
		"forms":   rendered.Forms,
	}).Debug("공개 페이지 렌더링")

	data := struct {
		ID      int64
		Type    string
		Title   string
		Content template.HTML
		Footer  template.HTML
	}{
		ID:      post.ID,
		Type:    post.Type,
		Title:   rendered.Title,
		Content: template.HTML(rendered.Content),
		Footer:  template.HTML(rendered.Footer),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "공개 페이지 렌더링에 실패했습니다")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
