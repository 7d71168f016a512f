// Package httputil HTTP 에러 응답 생성과 전역 에러 핸들러를 제공합니다.
package httputil

import (
	"net/http"

	"github.com/darkkaiser/convertkit-admin/internal/auth"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/response"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 전역 HTTP 에러 핸들러입니다.
//
// echo.HTTPError는 상태 코드와 메시지를 그대로 사용하고, 애플리케이션 에러(AppError)는 에러 타입에 맞는
// 상태 코드로 변환합니다. 내부 에러 메시지는 응답에 노출하지 않습니다.
// 4xx는 Warn, 5xx는 Error 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := statusOf(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}
	if u, err := auth.GetUser(c); err == nil {
		fields["user_id"] = u.ID
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// statusOf 에러에 대응하는 HTTP 상태 코드와 클라이언트용 메시지를 반환합니다.
func statusOf(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		message := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}
		if he.Code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
			message = constants.ErrMsgNotFound
		}
		return he.Code, message
	}

	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		return http.StatusInternalServerError, constants.ErrMsgInternalServer
	}

	switch {
	case apperrors.Is(err, apperrors.InvalidInput):
		return http.StatusBadRequest, constants.ErrMsgBadRequest
	case apperrors.Is(err, apperrors.Unauthorized):
		return http.StatusUnauthorized, constants.ErrMsgUnauthorized
	case apperrors.Is(err, apperrors.Forbidden):
		return http.StatusForbidden, constants.ErrMsgForbidden
	case apperrors.Is(err, apperrors.NotFound):
		return http.StatusNotFound, constants.ErrMsgNotFound
	case apperrors.Is(err, apperrors.Conflict):
		return http.StatusConflict, constants.ErrMsgConflict
	case apperrors.Is(err, apperrors.Unavailable):
		return http.StatusServiceUnavailable, constants.ErrMsgServiceUnavailable
	}
	return http.StatusInternalServerError, constants.ErrMsgInternalServer
}
