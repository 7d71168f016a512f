package log

import "github.com/sirupsen/logrus"

// logrus 타입의 별칭입니다. 다른 패키지가 logrus를 직접 import하지 않도록 합니다.
type (
	Level     = logrus.Level
	Fields    = logrus.Fields
	Entry     = logrus.Entry
	Hook      = logrus.Hook
	Logger    = logrus.Logger
	Formatter = logrus.Formatter
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// ParseLevel 문자열("debug", "info" 등)을 Level로 변환합니다.
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}
