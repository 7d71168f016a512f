package public

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/convertkit-admin/internal/app"
	"github.com/darkkaiser/convertkit-admin/internal/config"
	"github.com/darkkaiser/convertkit-admin/internal/kit"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*echo.Echo, *app.App) {
	t.Helper()

	cfg := &config.AppConfig{
		Storage:   config.StorageConfig{Driver: config.StorageMemory},
		Kit:       config.KitConfig{BaseURL: "http://127.0.0.1:1/v3"},
		PostTypes: []string{"page", "post"},
		Admin:     config.AdminConfig{NonceSecret: "0123456789abcdef0123456789abcdef"},
	}
	a, err := app.NewWithStore(cfg, store.NewMemoryStore())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Forms.Set(context.Background(), []kit.Form{
		{ID: 2765139, Name: "Page Form", Format: kit.FormatInline, UID: "85629c512d", EmbedJS: "https://example.ck.page/85629c512d/index.js"},
	}))

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.GET("/:slug", NewHandler(a.Store, a.Renderer).Page)
	return e, a
}

func TestHandler_Page(t *testing.T) {
	e, a := newTestServer(t)
	ctx := context.Background()

	published := &store.Post{Type: "page", Title: "Landing", Content: `<p>Hi</p>[convertkit_form form="2765139"]`, Status: store.PostStatusPublish}
	require.NoError(t, a.Store.InsertPost(ctx, published))

	draft := &store.Post{Type: "page", Title: "Draft", Status: store.PostStatusDraft}
	require.NoError(t, a.Store.InsertPost(ctx, draft))

	t.Run("발행된 게시물", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+published.Slug, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
		require.NoError(t, err)
		assert.Equal(t, "Landing", doc.Find("h1.entry-title").Text())
		assert.Equal(t, 1, doc.Find(`.entry-content form[data-sv-form="2765139"]`).Length())
		assert.Equal(t, 1, doc.Find(`script[data-uid="85629c512d"]`).Length())
	})

	t.Run("초안은 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+draft.Slug, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("없는 게시물은 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
