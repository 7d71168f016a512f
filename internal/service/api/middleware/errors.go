package middleware

import (
	"fmt"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/constants"
	"github.com/darkkaiser/convertkit-admin/internal/service/api/httputil"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환하는 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrCapabilityRequired 로그인한 사용자에게 필요한 권한이 없을 때 반환하는 403 에러입니다.
	ErrCapabilityRequired = httputil.NewForbiddenError(constants.ErrMsgForbidden)
)

// newErrPanicRecovered 복구된 패닉 값을 내부 오류로 감쌉니다.
func newErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "요청 처리 중 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
}
