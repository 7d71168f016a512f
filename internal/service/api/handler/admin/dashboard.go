package admin

import (
	"net/http"

	"github.com/darkkaiser/convertkit-admin/internal/store"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type postTypeLink struct {
	Name  string
	Label string
}

// Dashboard 관리 화면 첫 페이지. 게시물 목록과 새 게시물 링크를 보여 줍니다.
func (h *Handler) Dashboard(c echo.Context) error {
	posts, err := h.app.Store.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}

	data := struct {
		PostTypes []postTypeLink
		Posts     []*store.Post
		ViewURL   func(slug string) string
	}{
		PostTypes: h.postTypeLinks(),
		Posts:     posts,
		ViewURL:   h.viewURL,
	}

	return h.render(c, http.StatusOK, layout{Title: "Dashboard", Heading: true, Screen: screenDashboard}, "dashboard", data)
}

func (h *Handler) postTypeLinks() []postTypeLink {
	links := make([]postTypeLink, 0, len(h.app.Config.PostTypes))
	for _, pt := range h.app.Config.PostTypes {
		links = append(links, postTypeLink{Name: pt, Label: postTypeLabel(pt)})
	}
	return links
}

// postTypeLabel "page" → "Page"
func postTypeLabel(postType string) string {
	return cases.Title(language.English).String(postType)
}

func (h *Handler) viewURL(slug string) string {
	return h.app.URL("/" + slug)
}
