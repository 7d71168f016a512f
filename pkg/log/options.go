package log

import (
	"fmt"
	"os"
)

// Options 로거 설정입니다.
type Options struct {
	Name  string // 로그 파일명에 사용될 애플리케이션 식별자
	Dir   string // 로그 디렉토리 (기본값: logs)
	Level Level

	MaxAge     int // 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 파일 최대 크기 (0: 100MB)
	MaxBackups int // 최대 백업 파일 수 (0: 20개)

	EnableCriticalLog bool // ERROR 이상을 <name>.critical.log에 별도로 기록
	EnableVerboseLog  bool // DEBUG 이하를 <name>.verbose.log에 별도로 기록 (메인 로그에는 남기지 않음)
	EnableConsoleLog  bool // 표준 출력에도 기록

	ReportCaller     bool
	CallerPathPrefix string // 호출자 함수 경로에서 잘라낼 접두사 (예: "github.com/darkkaiser")
}

// Validate 설정값을 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}
	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}
	if opts.MaxAge < 0 || opts.MaxSizeMB < 0 || opts.MaxBackups < 0 {
		return fmt.Errorf("로그 로테이션 설정값은 0 이상이어야 합니다 (MaxAge=%d, MaxSizeMB=%d, MaxBackups=%d)", opts.MaxAge, opts.MaxSizeMB, opts.MaxBackups)
	}
	return nil
}
