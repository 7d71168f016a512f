package httputil

import (
	"net/http"

	"github.com/darkkaiser/convertkit-admin/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

// NewBadRequestError 400 Bad Request 에러를 생성합니다.
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewForbiddenError 403 Forbidden 에러를 생성합니다.
func NewForbiddenError(message string) error {
	return newHTTPError(http.StatusForbidden, message)
}

// NewNotFoundError 404 Not Found 에러를 생성합니다.
func NewNotFoundError(message string) error {
	return newHTTPError(http.StatusNotFound, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다.
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
