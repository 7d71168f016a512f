package admin

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/request"
	"github.com/labstack/echo/v4"
)

const setupPage = "convertkit-setup"

// SetupPage 설정 마법사의 폼 선택 단계
//
//	GET /wp-admin/admin.php?page=convertkit-setup&step=3
func (h *Handler) SetupPage(c echo.Context) error {
	if c.QueryParam("page") != setupPage {
		return httputil.NewNotFoundError(constants.ErrMsgNotFound)
	}

	ctx := c.Request().Context()

	var step bytes.Buffer
	if err := h.app.Wizard.RenderFormSelection(ctx, &step); err != nil {
		return err
	}
	nonce, err := h.createNonce(c, setupNonceAction)
	if err != nil {
		return err
	}

	data := struct {
		Step     template.HTML
		HasForms bool
		Nonce    string
	}{
		Step:     template.HTML(step.String()),
		HasForms: h.app.Forms.Exist(ctx),
		Nonce:    nonce,
	}

	return h.render(c, http.StatusOK, layout{Title: "ConvertKit Setup", Screen: screenSetup}, "setup", data)
}

// SubmitSetup 폼 선택 단계 제출. 선택한 폼을 'post' 유형의 기본 폼으로 저장하고 설정 화면으로 이동합니다.
//
//	POST /wp-admin/admin.php?page=convertkit-setup&step=3
func (h *Handler) SubmitSetup(c echo.Context) error {
	if c.QueryParam("page") != setupPage {
		return httputil.NewNotFoundError(constants.ErrMsgNotFound)
	}

	var req request.SetupRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}
	if err := h.verifyNonce(c, req.Nonce, setupNonceAction); err != nil {
		return err
	}
	if err := handler.ValidateRequest(&req); err != nil {
		return httputil.NewBadRequestError(handler.FormatValidationError(err))
	}

	if err := h.app.Wizard.SubmitFormSelection(c.Request().Context(), req.FormID); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, settingsURL("general", true))
}
