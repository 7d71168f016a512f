// Package storetest store.Store 구현체가 공통으로 만족해야 하는 동작을 검증하는 테스트 모음입니다.
package storetest

import (
	"context"
	"testing"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run newStore로 생성한 저장소에 대해 옵션, 게시물 메타, 게시물 동작을 검증합니다.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Options", func(t *testing.T) { testOptions(t, newStore(t)) })
	t.Run("PostMeta", func(t *testing.T) { testPostMeta(t, newStore(t)) })
	t.Run("Posts", func(t *testing.T) { testPosts(t, newStore(t)) })
}

func testOptions(t *testing.T, s store.Store) {
	ctx := context.Background()

	var notices []string
	err := s.GetOption(ctx, "convertkit_admin_notices", &notices)
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))

	require.NoError(t, s.UpdateOption(ctx, "convertkit_admin_notices", []string{"authorization_failed"}))
	require.NoError(t, s.GetOption(ctx, "convertkit_admin_notices", &notices))
	assert.Equal(t, []string{"authorization_failed"}, notices)

	settings := map[string]any{"api_key": "key", "page_form": "-1"}
	require.NoError(t, s.UpdateOption(ctx, "_wp_convertkit_settings", settings))
	require.NoError(t, s.UpdateOption(ctx, "_wp_convertkit_settings", map[string]any{"api_key": "changed"}))

	var got map[string]any
	require.NoError(t, s.GetOption(ctx, "_wp_convertkit_settings", &got))
	assert.Equal(t, map[string]any{"api_key": "changed"}, got, "덮어쓰기는 값 전체를 교체해야 한다")

	require.NoError(t, s.DeleteOption(ctx, "convertkit_admin_notices"))
	require.ErrorIs(t, s.GetOption(ctx, "convertkit_admin_notices", &notices), store.ErrNotFound)
	require.NoError(t, s.DeleteOption(ctx, "convertkit_admin_notices"), "없는 옵션 삭제는 에러가 아니다")

	assert.ErrorIs(t, s.GetOption(ctx, "_wp_convertkit_settings", got), store.ErrLoadRequiresPointer)
}

func testPostMeta(t *testing.T, s store.Store) {
	ctx := context.Background()

	type meta struct {
		Form        string `json:"form"`
		LandingPage string `json:"landing_page"`
	}

	var m meta
	require.ErrorIs(t, s.GetPostMeta(ctx, 1, "_wp_convertkit_post_meta", &m), store.ErrNotFound)

	require.NoError(t, s.UpdatePostMeta(ctx, 1, "_wp_convertkit_post_meta", meta{Form: "123"}))
	require.NoError(t, s.UpdatePostMeta(ctx, 2, "_wp_convertkit_post_meta", meta{Form: "0"}))
	require.NoError(t, s.UpdatePostMeta(ctx, 1, "_wp_convertkit_post_meta", meta{Form: "456"}))

	require.NoError(t, s.GetPostMeta(ctx, 1, "_wp_convertkit_post_meta", &m))
	assert.Equal(t, "456", m.Form)
	require.NoError(t, s.GetPostMeta(ctx, 2, "_wp_convertkit_post_meta", &m))
	assert.Equal(t, "0", m.Form)

	require.NoError(t, s.DeletePostMeta(ctx, 1, "_wp_convertkit_post_meta"))
	require.ErrorIs(t, s.GetPostMeta(ctx, 1, "_wp_convertkit_post_meta", &m), store.ErrNotFound)
}

func testPosts(t *testing.T, s store.Store) {
	ctx := context.Background()

	page := &store.Post{Type: "page", Title: "Form Trigger: Shortcode", Content: `[convertkit_formtrigger form="1"]`}
	require.NoError(t, s.InsertPost(ctx, page))
	assert.NotZero(t, page.ID)
	assert.Equal(t, "form-trigger-shortcode", page.Slug)
	assert.Equal(t, store.PostStatusDraft, page.Status)
	assert.False(t, page.CreatedAt.IsZero())

	dup := &store.Post{Type: "page", Title: "Form Trigger: Shortcode", Status: store.PostStatusPublish}
	require.NoError(t, s.InsertPost(ctx, dup))
	assert.Equal(t, "form-trigger-shortcode-2", dup.Slug, "같은 제목은 고유한 slug를 받아야 한다")
	assert.Greater(t, dup.ID, page.ID)

	article := &store.Post{Type: "article", Title: "Article", Status: store.PostStatusPublish}
	require.NoError(t, s.InsertPost(ctx, article))

	got, err := s.GetPostBySlug(ctx, "form-trigger-shortcode")
	require.NoError(t, err)
	assert.Equal(t, page.ID, got.ID)
	assert.Equal(t, page.Content, got.Content)

	got.Status = store.PostStatusPublish
	got.Content = "updated"
	require.NoError(t, s.UpdatePost(ctx, got))

	reloaded, err := s.GetPost(ctx, page.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsPublished())
	assert.Equal(t, "updated", reloaded.Content)
	assert.Equal(t, "form-trigger-shortcode", reloaded.Slug)

	pages, err := s.ListPosts(ctx, "page")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, page.ID, pages[0].ID)

	all, err := s.ListPosts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = s.GetPost(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetPostBySlug(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdatePost(ctx, &store.Post{ID: 9999, Type: "page"}), store.ErrNotFound)
}
