// Package auth 관리 화면 사용자와 권한(capability), 요청 문맥에 저장되는 현재 사용자(viewer)를 다룹니다.
package auth

import (
	"slices"

	"github.com/darkkaiser/convertkit-admin/internal/config"
)

// User 인증된 관리 화면 사용자입니다.
type User struct {
	ID           string
	Capabilities []string
}

// Can 사용자가 capability 권한을 가지고 있는지 확인합니다. nil 사용자는 아무 권한도 없습니다.
func (u *User) Can(capability string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.Capabilities, capability)
}

// CanManageOptions 플러그인 설정을 변경할 수 있는 사용자인지 확인합니다.
func (u *User) CanManageOptions() bool {
	return u.Can(config.CapabilityManageOptions)
}
