package admin

import (
	"bytes"
	"net/http"

	"github.com/darkkaiser/convertkit-admin/internal/editor"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/handler"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/request"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// AJAX 응답 본문
const (
	ajaxInvalidNonce   = "-1"
	ajaxUnknownAction  = "0"
	javaScriptMIMEType = "application/javascript; charset=utf-8"
)

// Ajax godoc
// @Summary 관리 화면 AJAX 액션
// @Description action 값에 따라 요청을 처리합니다.
// @Description - convertkit_admin_tinymce_output_modal: 편집기 블록 입력 모달 HTML을 반환합니다.
// @Description 보안 토큰이 올바르지 않으면 403과 함께 "-1", 알 수 없는 블록이면 빈 본문을 반환합니다.
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Produce html
// @Security BasicAuth
// @Param action formData string true "액션 이름"
// @Param nonce formData string true "보안 토큰"
// @Param editor_type formData string true "편집기 종류 (tinymce, quicktags)"
// @Param shortcode formData string true "블록 이름 (예: convertkit-formtrigger)"
// @Success 200 {string} string "모달 HTML"
// @Failure 400 {string} string "0 (알 수 없는 액션)"
// @Failure 403 {string} string "-1 (보안 토큰 오류)"
// @Router /wp-admin/admin-ajax.php [post]
func (h *Handler) Ajax(c echo.Context) error {
	switch action := c.FormValue("action"); action {
	case editor.ModalAction:
		return h.outputModal(c)
	default:
		applog.WithComponentAndFields(constants.ComponentAdminHandler, applog.Fields{
			"action": action,
		}).Debug("알 수 없는 AJAX 액션")

		return c.String(http.StatusBadRequest, ajaxUnknownAction)
	}
}

// outputModal 툴바 버튼이 요청한 블록의 입력 모달을 응답합니다.
func (h *Handler) outputModal(c echo.Context) error {
	ctx := c.Request().Context()

	var req request.ModalRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}
	if err := h.verifyNonce(c, req.Nonce, editorNonceAction); err != nil {
		return c.String(http.StatusForbidden, ajaxInvalidNonce)
	}
	if err := handler.ValidateRequest(&req); err != nil {
		return httputil.NewBadRequestError(handler.FormatValidationError(err))
	}

	blocks, err := editor.Blocks(ctx, h.app.Forms)
	if err != nil {
		return err
	}
	block, ok := editor.Find(blocks, req.Shortcode)
	if !ok {
		return c.NoContent(http.StatusOK)
	}

	var buf bytes.Buffer
	if err := editor.RenderModal(ctx, &buf, block, req.EditorType); err != nil {
		if apperrors.Is(err, apperrors.InvalidInput) {
			return httputil.NewBadRequestError(err.Error())
		}
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// QuickTagsScript 텍스트 편집기 툴바 스크립트
//
//	GET /wp-admin/js/quicktags.js
func (h *Handler) QuickTagsScript(c echo.Context) error {
	return c.Blob(http.StatusOK, javaScriptMIMEType, editor.QuickTagsScript)
}
