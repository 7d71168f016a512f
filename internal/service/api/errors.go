package api

import (
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
)

var (
	// ErrAppNotInitialized 서비스 시작 시 애플리케이션 구성 요소가 준비되지 않았을 때 반환합니다.
	ErrAppNotInitialized = apperrors.New(apperrors.Internal, "애플리케이션 구성 요소가 초기화되지 않았습니다")
)
