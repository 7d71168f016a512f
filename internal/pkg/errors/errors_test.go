package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{Unknown, "Unknown"},
		{Internal, "Internal"},
		{System, "System"},
		{Unauthorized, "Unauthorized"},
		{Forbidden, "Forbidden"},
		{InvalidInput, "InvalidInput"},
		{Conflict, "Conflict"},
		{NotFound, "NotFound"},
		{ExecutionFailed, "ExecutionFailed"},
		{ParsingFailed, "ParsingFailed"},
		{Timeout, "Timeout"},
		{Unavailable, "Unavailable"},
		{ErrorType(-1), "ErrorType(-1)"},
		{ErrorType(999), "ErrorType(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestNewAndWrap(t *testing.T) {
	t.Parallel()

	t.Run("New는 타입과 메시지를 보존한다", func(t *testing.T) {
		err := New(NotFound, "게시물 없음")

		var appErr *AppError
		require.True(t, As(err, &appErr))
		assert.Equal(t, NotFound, appErr.Type())
		assert.Equal(t, "게시물 없음", appErr.Message())
		assert.Equal(t, "[NotFound] 게시물 없음", err.Error())
		assert.NotEmpty(t, appErr.Stack())
	})

	t.Run("Newf는 포맷을 적용한다", func(t *testing.T) {
		err := Newf(InvalidInput, "status: %d", 401)
		assert.Contains(t, err.Error(), "status: 401")
	})

	t.Run("nil을 Wrap하면 nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, System, "무시"))
		assert.Nil(t, Wrapf(nil, System, "무시 %d", 1))
	})

	t.Run("Wrap은 원인을 체인에 남긴다", func(t *testing.T) {
		err := Wrap(context.DeadlineExceeded, Timeout, "Kit API 호출 시간 초과")

		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.True(t, Is(err, Timeout))
		assert.False(t, Is(err, NotFound))
		assert.Equal(t, context.DeadlineExceeded, RootCause(err))
	})
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	err := Wrap(New(Unauthorized, "invalid api key"), ExecutionFailed, "폼 목록 갱신 실패")
	assert.Equal(t, Unauthorized, UnderlyingType(err))
	assert.True(t, Is(err, Unauthorized))
	assert.True(t, Is(err, ExecutionFailed))

	assert.Equal(t, Unknown, UnderlyingType(errors.New("plain")))
	assert.Equal(t, Unknown, UnderlyingType(nil))
}

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(errors.New("disk full"), System, "옵션 저장 실패")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[System] 옵션 저장 실패")
	assert.Contains(t, detailed, "Stack trace:")
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "disk full")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))
}
