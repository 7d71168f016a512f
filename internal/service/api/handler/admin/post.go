package admin

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/editor"
	"github.com/darkkaiser/convertkit-admin/internal/postmeta"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/request"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

const defaultPostType = "post"

// 게시물 저장 후 편집 화면에 표시하는 메시지 번호
const (
	messageUpdated   = "1"
	messagePublished = "6"
)

// metaBoxField 게시물별 ConvertKit 지정 값 폼 필드 이름
const metaBoxField = "wp-convertkit"

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

type postView struct {
	Post     *store.Post
	PostType string
	Label    string
	Nonce    string

	Message string
	ViewURL string

	FormOptions        []selectOption
	LandingPageOptions []selectOption
	TagOptions         []selectOption

	SubmitText string
}

func updatePostAction(postID int64) string {
	return "update-post_" + strconv.FormatInt(postID, 10)
}

// NewPost 새 게시물 편집 화면
//
//	GET /wp-admin/post-new.php?post_type=page
func (h *Handler) NewPost(c echo.Context) error {
	postType := c.QueryParam("post_type")
	if postType == "" {
		postType = defaultPostType
	}
	if !slices.Contains(h.app.Config.PostTypes, postType) {
		return httputil.NewBadRequestError("지원하지 않는 게시물 유형입니다: " + postType)
	}

	nonce, err := h.createNonce(c, addPostAction)
	if err != nil {
		return err
	}

	view := postView{
		Post:       &store.Post{Type: postType},
		PostType:   postType,
		Label:      postTypeLabel(postType),
		Nonce:      nonce,
		SubmitText: "Publish",
	}
	return h.renderEditor(c, "Add New "+view.Label, view, postmeta.Defaults())
}

// EditPost 게시물 편집 화면
//
//	GET /wp-admin/post.php?post=1&action=edit&message=6
func (h *Handler) EditPost(c echo.Context) error {
	ctx := c.Request().Context()

	postID, err := strconv.ParseInt(c.QueryParam("post"), 10, 64)
	if err != nil || postID <= 0 {
		return httputil.NewBadRequestError("게시물 ID가 올바르지 않습니다")
	}
	post, err := h.app.Store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	meta, err := h.app.PostMeta.Get(ctx, postID)
	if err != nil {
		return err
	}
	nonce, err := h.createNonce(c, updatePostAction(postID))
	if err != nil {
		return err
	}

	view := postView{
		Post:       post,
		PostType:   post.Type,
		Label:      postTypeLabel(post.Type),
		Nonce:      nonce,
		ViewURL:    h.viewURL(post.Slug),
		SubmitText: "Update",
	}
	switch c.QueryParam("message") {
	case messagePublished:
		view.Message = view.Label + " published."
	case messageUpdated:
		view.Message = view.Label + " updated."
	}
	return h.renderEditor(c, "Edit "+view.Label, view, meta)
}

func (h *Handler) renderEditor(c echo.Context, title string, view postView, meta postmeta.Settings) error {
	ctx := c.Request().Context()

	if err := h.fillMetaBoxOptions(ctx, &view, meta); err != nil {
		return err
	}

	blocks, err := editor.Blocks(ctx, h.app.Forms)
	if err != nil {
		return err
	}
	editorNonce, err := h.createNonce(c, editorNonceAction)
	if err != nil {
		return err
	}
	settingsJSON, err := editor.ScriptSettings(blocks, AjaxPath, editorNonce)
	if err != nil {
		return err
	}

	l := layout{
		Title:        title,
		Heading:      true,
		Screen:       screenPost,
		InlineScript: template.JS("window.convertkit_quicktags = " + string(settingsJSON) + ";"),
		Scripts:      []string{QuickTagsPath},
	}
	return h.render(c, http.StatusOK, l, "post", view)
}

// fillMetaBoxOptions 게시물별 폼, 랜딩 페이지, 태그 선택 목록을 채웁니다.
func (h *Handler) fillMetaBoxOptions(ctx context.Context, view *postView, meta postmeta.Settings) error {
	forms, err := h.app.Forms.Get(ctx)
	if err != nil {
		return err
	}
	view.FormOptions = []selectOption{
		{Value: postmeta.FormDefault, Label: "Default", Selected: meta.UsesDefaultForm()},
		{Value: postmeta.FormNone, Label: "None", Selected: meta.Form == postmeta.FormNone},
	}
	for _, f := range forms {
		id := strconv.FormatInt(f.ID, 10)
		view.FormOptions = append(view.FormOptions, selectOption{Value: id, Label: f.Name, Selected: meta.Form == id})
	}

	landingPages, err := h.app.LandingPages.Get(ctx)
	if err != nil {
		return err
	}
	view.LandingPageOptions = []selectOption{{Value: "", Label: "None", Selected: meta.LandingPage == ""}}
	for _, p := range landingPages {
		id := strconv.FormatInt(p.ID, 10)
		view.LandingPageOptions = append(view.LandingPageOptions, selectOption{Value: id, Label: p.Name, Selected: meta.LandingPage == id})
	}

	tags, err := h.app.Tags.Get(ctx)
	if err != nil {
		return err
	}
	view.TagOptions = []selectOption{{Value: "", Label: "None", Selected: meta.Tag == ""}}
	for _, t := range tags {
		id := strconv.FormatInt(t.ID, 10)
		view.TagOptions = append(view.TagOptions, selectOption{Value: id, Label: t.Name, Selected: meta.Tag == id})
	}
	return nil
}

// SavePost 게시물 발행 또는 수정
//
//	POST /wp-admin/post.php
//
// post_ID가 없으면 새 게시물을 발행 상태로 저장합니다. 저장 후 편집 화면으로 이동합니다.
func (h *Handler) SavePost(c echo.Context) error {
	ctx := c.Request().Context()

	var req request.PostRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}

	action := addPostAction
	if req.PostID > 0 {
		action = updatePostAction(req.PostID)
	}
	if err := h.verifyNonce(c, req.Nonce, action); err != nil {
		return err
	}
	if err := handler.ValidateRequest(&req); err != nil {
		return httputil.NewBadRequestError(handler.FormatValidationError(err))
	}
	if !slices.Contains(h.app.Config.PostTypes, req.PostType) {
		return httputil.NewBadRequestError("지원하지 않는 게시물 유형입니다: " + req.PostType)
	}

	var (
		post    *store.Post
		message string
	)
	if req.PostID > 0 {
		existing, err := h.app.Store.GetPost(ctx, req.PostID)
		if err != nil {
			return err
		}
		existing.Title = req.Title
		existing.Content = req.Content
		if err := h.app.Store.UpdatePost(ctx, existing); err != nil {
			return err
		}
		post, message = existing, messageUpdated
	} else {
		post = &store.Post{
			Type:    req.PostType,
			Title:   req.Title,
			Content: req.Content,
			Status:  store.PostStatusPublish,
		}
		if err := h.app.Store.InsertPost(ctx, post); err != nil {
			return err
		}
		message = messagePublished
	}

	meta := postmeta.Settings{
		Form:        c.FormValue(metaBoxField + "[form]"),
		LandingPage: c.FormValue(metaBoxField + "[landing_page]"),
		Tag:         c.FormValue(metaBoxField + "[tag]"),
	}
	if meta.Form == "" {
		meta.Form = postmeta.FormDefault
	}
	if err := h.app.PostMeta.Save(ctx, post.ID, meta); err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentAdminHandler, applog.Fields{
		"post_id":   post.ID,
		"post_type": post.Type,
		"slug":      post.Slug,
		"user_id":   auth.MustGetUser(c).ID,
	}).Info("게시물이 저장되었습니다")

	return c.Redirect(http.StatusFound, fmt.Sprintf("/wp-admin/post.php?post=%d&action=edit&message=%s", post.ID, message))
}
