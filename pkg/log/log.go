// Package log logrus 기반의 전역 로깅 설정과 컴포넌트 단위 로깅 헬퍼를 제공합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// StandardLogger logrus의 전역 Logger를 반환합니다. (Echo 로거 어댑터 등에서 사용)
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetLevel 전역 로그 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}
