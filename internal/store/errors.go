package store

import (
	"fmt"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
)

var (
	// ErrNotFound 요청한 옵션, 메타, 게시물이 존재하지 않을 때 반환됩니다.
	ErrNotFound = apperrors.New(apperrors.NotFound, "저장된 데이터를 찾을 수 없습니다")

	// ErrPathTraversalDetected 저장소 키가 데이터 디렉토리를 벗어나는 경로로 해석될 때 반환됩니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 허용되지 않은 경로 접근 시도로 인해 요청이 차단되었습니다")

	// ErrLoadRequiresPointer 역직렬화 대상이 nil이 아닌 포인터가 아닐 때 반환됩니다.
	ErrLoadRequiresPointer = apperrors.New(apperrors.Internal, "내부 시스템 오류: 데이터 로드 대상 객체가 올바른 포인터 타입이 아닙니다")
)

func newErrMarshalFailed(err error, key string) error {
	return apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("데이터 직렬화 실패 (key=%s)", key))
}

func newErrUnmarshalFailed(err error, key string) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("저장된 데이터 역직렬화 실패 (key=%s)", key))
}

func newErrReadFailed(err error, key string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("저장소 읽기 실패 (key=%s)", key))
}

func newErrWriteFailed(err error, key string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("저장소 쓰기 실패 (key=%s)", key))
}
