package admin

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	"github.com/darkkaiser/convertkit-admin/internal/notice"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	"github.com/darkkaiser/convertkit-admin/internal/settings"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// settingsPagePath 플러그인 설정 화면 경로 (page 쿼리 제외)
const settingsPagePath = "/wp-admin/options-general.php"

// settingsNonceAction 설정 저장 폼의 보안 토큰 동작 이름
func settingsNonceAction(settingsKey string) string {
	return settingsKey + "-options"
}

type settingsTab struct {
	Text   string
	URL    string
	Active bool
}

// SettingsPage 플러그인 설정 화면
//
//	GET /wp-admin/options-general.php?page=_wp_convertkit_settings&tab=general
func (h *Handler) SettingsPage(c echo.Context) error {
	if c.QueryParam("page") != settings.GeneralKey {
		return httputil.NewNotFoundError(constants.ErrMsgNotFound)
	}

	ctx := c.Request().Context()
	page, err := h.app.Settings.NewPage(ctx, h.app.Forms, h.app.Hooks)
	if err != nil {
		return err
	}
	section := page.Section(c.QueryParam("tab"))

	values, err := h.app.Settings.Values(ctx, section.SettingsKey)
	if err != nil {
		return err
	}
	nonce, err := h.createNonce(c, settingsNonceAction(section.SettingsKey))
	if err != nil {
		return err
	}

	var form bytes.Buffer
	if err := section.Render(h.event(c, notice.SettingsScreen), &form, values, nonce); err != nil {
		return err
	}

	tabs := make([]settingsTab, 0, len(page.Sections))
	for _, s := range page.Sections {
		tabs = append(tabs, settingsTab{Text: s.TabText, URL: settingsURL(s.Name, false), Active: s == section})
	}

	data := struct {
		Updated bool
		Tabs    []settingsTab
		Section template.HTML
	}{
		Updated: c.QueryParam("settings-updated") == "true",
		Tabs:    tabs,
		Section: template.HTML(form.String()),
	}

	return h.render(c, http.StatusOK, layout{Title: "ConvertKit", Heading: true, Screen: notice.SettingsScreen}, "settings", data)
}

// SaveSettings 설정 폼 저장
//
//	POST /wp-admin/options.php
//
// option_page 값이 가리키는 설정 키로 제출된 `<key>[<field>]` 값을 모아 기본값과 합친 뒤 저장합니다.
// 일반 설정을 저장하면 새 인증 정보로 폼, 랜딩 페이지, 태그 목록을 다시 가져옵니다.
func (h *Handler) SaveSettings(c echo.Context) error {
	ctx := c.Request().Context()
	optionPage := c.FormValue("option_page")

	if err := h.verifyNonce(c, c.FormValue("_wpnonce"), settingsNonceAction(optionPage)); err != nil {
		return err
	}

	page, err := h.app.Settings.NewPage(ctx, h.app.Forms, h.app.Hooks)
	if err != nil {
		return err
	}
	if !page.Registry.Registered(optionPage) {
		return httputil.NewBadRequestError("등록되지 않은 설정입니다: " + optionPage)
	}

	form, err := c.FormParams()
	if err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}

	values, err := page.Registry.Sanitize(optionPage, collectOptionValues(form, optionPage))
	if err != nil {
		return err
	}
	if err := h.app.Settings.Save(ctx, optionPage, values); err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentAdminHandler, applog.Fields{
		"option_page": optionPage,
		"user_id":     auth.MustGetUser(c).ID,
	}).Info("플러그인 설정이 저장되었습니다")

	if optionPage == settings.GeneralKey {
		h.refreshResources(ctx)
	}

	tab := page.Sections[0].Name
	for _, s := range page.Sections {
		if s.SettingsKey == optionPage {
			tab = s.Name
		}
	}
	return c.Redirect(http.StatusFound, settingsURL(tab, true))
}

// refreshResources 저장된 인증 정보로 리소스를 다시 가져옵니다. 인증 실패 알림은 Refresher가 관리하므로
// 실패해도 설정 저장은 성공으로 처리합니다.
func (h *Handler) refreshResources(ctx context.Context) {
	err := h.app.Refresher.Refresh(ctx)
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.InvalidInput):
		applog.WithComponentAndFields(constants.ComponentAdminHandler, applog.Fields{
			"error": err,
		}).Debug("인증 정보가 없어 리소스를 갱신하지 않습니다")
	default:
		applog.WithComponentAndFields(constants.ComponentAdminHandler, applog.Fields{
			"error": err,
		}).Warn("설정 저장 후 리소스 갱신 실패")
	}
}

// collectOptionValues 폼 값 중 `<key>[<field>]` 형태의 항목만 모읍니다. 같은 필드가 여러 번 제출되면 마지막 값을 사용합니다.
func collectOptionValues(form url.Values, key string) settings.Values {
	values := make(settings.Values)
	prefix := key + "["
	for name, vs := range form {
		if len(vs) == 0 || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") {
			continue
		}
		field := name[len(prefix) : len(name)-1]
		if field == "" {
			continue
		}
		values[field] = vs[len(vs)-1]
	}
	return values
}

func settingsURL(tab string, updated bool) string {
	q := url.Values{}
	q.Set("page", settings.GeneralKey)
	q.Set("tab", tab)
	if updated {
		q.Set("settings-updated", "true")
	}
	return settingsPagePath + "?" + q.Encode()
}
