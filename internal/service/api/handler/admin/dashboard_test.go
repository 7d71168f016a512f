package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/darkkaiser/convertkit-admin/internal/notice"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	require.NoError(t, f.app.Notices.Add(ctx, notice.AuthorizationFailed))
	post := &store.Post{Type: "page", Title: "Hello World", Status: store.PostStatusPublish}
	require.NoError(t, f.app.Store.InsertPost(ctx, post))

	rec := f.get(t, "/wp-admin/")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parseHTML(t, rec)
	assert.Equal(t, 1, doc.Find("div.notice.notice-error").Length(), "대시보드에는 인증 실패 알림이 보여야 합니다")
	assert.Equal(t, "Hello World", doc.Find("a.row-title").Text())

	view, ok := doc.Find("a.view").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080/hello-world", view)

	assert.Equal(t, 2, doc.Find("a.page-title-action").Length())
	assert.Equal(t, "Add New Page", doc.Find("a.page-title-action").First().Text())
}
