// Package nonce 관리 화면의 폼 저장과 AJAX 요청을 보호하는 동작(action) 단위 보안 토큰을 발급하고 검증합니다.
//
// 토큰은 HS256으로 서명된 JWT이며 사용자 ID(sub)와 동작 이름(action)에 묶여 있어서 다른 사용자나
// 다른 동작에 재사용할 수 없습니다.
package nonce

import (
	"errors"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "convertkit-admin"

var (
	// ErrInvalidNonce 서명, 형식, 사용자, 동작 중 하나라도 맞지 않을 때 반환됩니다.
	ErrInvalidNonce = apperrors.New(apperrors.Forbidden, "보안 토큰(nonce)이 유효하지 않습니다")

	// ErrExpiredNonce 유효 기간이 지난 토큰일 때 반환됩니다.
	ErrExpiredNonce = apperrors.New(apperrors.Forbidden, "보안 토큰(nonce)이 만료되었습니다")
)

// Claims 토큰에 담기는 클레임
type Claims struct {
	jwt.RegisteredClaims
	Action string `json:"action"`
}

// Manager 보안 토큰 발급기입니다.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager 서명 키와 유효 기간으로 Manager를 생성합니다.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Create userID 사용자가 action 동작에 사용할 토큰을 발급합니다.
func (m *Manager) Create(userID, action string) (string, error) {
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Action: action,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Internal, "보안 토큰 서명에 실패했습니다")
	}
	return signed, nil
}

// Verify 토큰이 userID 사용자의 action 동작을 위해 발급된 유효한 토큰인지 확인합니다.
func (m *Manager) Verify(token, userID, action string) error {
	if token == "" {
		return ErrInvalidNonce
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(userID),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredNonce
		}
		return ErrInvalidNonce
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Action != action {
		return ErrInvalidNonce
	}
	return nil
}
