package auth

import (
	"errors"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
)

var (
	// ErrUserMissingInContext 요청 문맥에 인증된 사용자 정보가 없을 때 반환됩니다.
	ErrUserMissingInContext = errors.New("Context에서 사용자 정보를 찾을 수 없습니다")

	// ErrUserTypeMismatch 요청 문맥에 저장된 값이 *User 타입이 아닐 때 반환됩니다.
	ErrUserTypeMismatch = errors.New("Context에 저장된 사용자 정보의 타입이 올바르지 않습니다")

	// ErrInvalidCredentials 사용자 ID가 없거나 비밀번호가 일치하지 않을 때 반환됩니다.
	// 어느 쪽이 틀렸는지는 응답에 드러내지 않습니다.
	ErrInvalidCredentials = apperrors.New(apperrors.Unauthorized, "사용자 ID 또는 비밀번호가 올바르지 않습니다")
)
