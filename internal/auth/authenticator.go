package auth

import (
	"sync"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/darkkaiser/convertkit-admin/pkg/strutil"
	"golang.org/x/crypto/bcrypt"
)

const component = "auth"

type account struct {
	passwordHash []byte
	capabilities []string
}

// Authenticator 설정 파일에 등록된 관리 화면 사용자를 bcrypt 해시로 인증합니다.
//
// 초기화 이후에는 읽기 전용이며 여러 고루틴에서 동시에 호출해도 안전합니다.
type Authenticator struct {
	mu       sync.RWMutex
	accounts map[string]account
}

// NewAuthenticator 설정의 사용자 목록으로 Authenticator를 생성합니다.
func NewAuthenticator(users []config.UserConfig) *Authenticator {
	accounts := make(map[string]account, len(users))
	for _, u := range users {
		accounts[u.ID] = account{
			passwordHash: []byte(u.PasswordHash),
			capabilities: append([]string(nil), u.Capabilities...),
		}
	}

	return &Authenticator{accounts: accounts}
}

// Authenticate 사용자 ID와 비밀번호를 확인하고 인증된 User를 반환합니다.
func (a *Authenticator) Authenticate(id, password string) (*User, error) {
	a.mu.RLock()
	acc, ok := a.accounts[id]
	a.mu.RUnlock()

	if !ok {
		applog.WithComponentAndFields(component, applog.Fields{
			"user_id": id,
		}).Warn("등록되지 않은 사용자의 로그인 시도")

		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"user_id":           id,
			"received_password": strutil.Mask(password),
		}).Warn("비밀번호 불일치")

		return nil, ErrInvalidCredentials
	}

	return &User{ID: id, Capabilities: append([]string(nil), acc.capabilities...)}, nil
}

// HashPassword 설정 파일에 기록할 bcrypt 해시를 생성합니다.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
