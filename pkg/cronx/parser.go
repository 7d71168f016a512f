// Package cronx 애플리케이션 표준 Cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식과 Descriptor(@every, @daily 등)를 지원하는 파서를 반환합니다.
//
//	"0 */30 * * * *" : 매 30분 0초
//	"@every 1h"      : 1시간마다
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate Cron 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("잘못된 Cron 표현식입니다(%q): %w", spec, err)
	}
	return nil
}
