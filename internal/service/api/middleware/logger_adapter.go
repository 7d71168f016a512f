package middleware

import (
	"io"

	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo의 echo.Logger 인터페이스를 logrus 로거로 구현합니다.
// Echo 내부 로그(서버 시작 실패 등)가 애플리케이션 로그와 같은 형식과 출력으로 기록됩니다.
type Logger struct {
	*applog.Logger
}

var (
	toEchoLevel = map[applog.Level]log.Lvl{
		applog.DebugLevel: log.DEBUG,
		applog.InfoLevel:  log.INFO,
		applog.WarnLevel:  log.WARN,
		applog.ErrorLevel: log.ERROR,
	}
	fromEchoLevel = map[log.Lvl]applog.Level{
		log.DEBUG: applog.DebugLevel,
		log.INFO:  applog.InfoLevel,
		log.WARN:  applog.WarnLevel,
		log.ERROR: applog.ErrorLevel,
	}
)

func (l Logger) Output() io.Writer     { return l.Logger.Out }
func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }

// Prefix, SetPrefix, SetHeader 형식은 logrus Formatter가 결정하므로 무시합니다.
func (l Logger) Prefix() string   { return "" }
func (l Logger) SetPrefix(string) {}
func (l Logger) SetHeader(string) {}

// Level Trace, Fatal, Panic 레벨은 대응하는 Echo 레벨이 없어 OFF로 보고합니다.
func (l Logger) Level() log.Lvl {
	if lvl, ok := toEchoLevel[l.Logger.Level]; ok {
		return lvl
	}
	return log.OFF
}

// SetLevel OFF는 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	if level, ok := fromEchoLevel[lvl]; ok {
		l.Logger.SetLevel(level)
	}
}

func (l Logger) Print(i ...any)                 { l.Logger.Print(i...) }
func (l Logger) Printf(format string, a ...any) { l.Logger.Printf(format, a...) }
func (l Logger) Printj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Print() }
func (l Logger) Debug(i ...any)                 { l.Logger.Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.Logger.Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Debug() }
func (l Logger) Info(i ...any)                  { l.Logger.Info(i...) }
func (l Logger) Infof(format string, a ...any)  { l.Logger.Infof(format, a...) }
func (l Logger) Infoj(j log.JSON)               { l.Logger.WithFields(applog.Fields(j)).Info() }
func (l Logger) Warn(i ...any)                  { l.Logger.Warn(i...) }
func (l Logger) Warnf(format string, a ...any)  { l.Logger.Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON)               { l.Logger.WithFields(applog.Fields(j)).Warn() }
func (l Logger) Error(i ...any)                 { l.Logger.Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.Logger.Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Error() }
func (l Logger) Fatal(i ...any)                 { l.Logger.Fatal(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.Logger.Fatalf(format, a...) }
func (l Logger) Fatalj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Fatal() }
func (l Logger) Panic(i ...any)                 { l.Logger.Panic(i...) }
func (l Logger) Panicf(format string, a ...any) { l.Logger.Panicf(format, a...) }
func (l Logger) Panicj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Panic() }
