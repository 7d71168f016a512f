package kit

import (
	"fmt"
	"net/http"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
)

var (
	// ErrMissingCredentials API Key 또는 API Secret이 비어 있을 때 반환됩니다.
	ErrMissingCredentials = apperrors.New(apperrors.InvalidInput, "Kit API Key와 API Secret을 모두 입력해야 합니다")
)

// newErrStatus 응답 상태 코드를 AppError로 변환합니다. 401, 403은 Unauthorized로 분류됩니다.
func newErrStatus(status int, endpoint, body string) error {
	errType := apperrors.ExecutionFailed
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		errType = apperrors.Unauthorized
	case status == http.StatusNotFound:
		errType = apperrors.NotFound
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		errType = apperrors.Unavailable
	}

	if len(body) > 256 {
		body = body[:256]
	}
	return apperrors.New(errType, fmt.Sprintf("Kit API 요청 실패 (endpoint=%s, status=%d): %s", endpoint, status, body))
}

func newErrRequestFailed(err error, endpoint string) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("Kit API에 연결할 수 없습니다 (endpoint=%s)", endpoint))
}

func newErrParsingFailed(endpoint string) error {
	return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("Kit API 응답 형식이 올바르지 않습니다 (endpoint=%s)", endpoint))
}
