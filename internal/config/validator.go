package config

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var (
	// 텔레그램 봇 토큰 형식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
	telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

	// bcrypt 해시 형식 ($2a$, $2b$, $2y$ + cost + 53자)
	bcryptHashRegex = regexp.MustCompile(`^\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}$`)
)

// newValidator 커스텀 유효성 검사 함수를 등록한 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 필드명 대신 JSON 키를 사용한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "cors_origin", validateCORSOrigin)
	mustRegister(v, "telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	})
	mustRegister(v, "bcrypt_hash", func(fl validator.FieldLevel) bool {
		return bcryptHashRegex.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
	}
}

// validateCORSOrigin 'Scheme://Host[:Port]' 형식 또는 '*'인지 검사합니다. 경로, 쿼리, 프래그먼트는 허용하지 않습니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	origin := strings.TrimSpace(fl.Field().String())
	if origin == "*" {
		return true
	}
	if origin == "" || strings.HasSuffix(origin, "/") {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Hostname() != "" && u.Path == "" && u.RawQuery == "" && u.Fragment == "" && u.User == nil
}

// validate 설정 로드 직후 각 항목의 정합성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "애플리케이션 설정"); err != nil {
		return err
	}
	if err := c.Storage.validate(); err != nil {
		return err
	}
	if err := c.Kit.validate(); err != nil {
		return err
	}
	if err := c.Admin.CORS.validate(); err != nil {
		return err
	}
	return nil
}

// checkStruct 구조체의 유효성을 검사하고 첫 번째 위반 항목을 사용자 친화적인 메시지로 반환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !apperrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "unique":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: '%s' 항목에 중복된 값이 존재합니다", contextName, fieldPath(fe)))
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value()))
	case "bcrypt_hash":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: '%s'는 bcrypt 해시여야 합니다", contextName, fieldPath(fe)))
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(bot_token) 형식이 올바르지 않습니다")
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: '%s' 설정이 올바르지 않습니다 (조건: %s)", contextName, fieldPath(fe), fe.Tag()))
}

// fieldPath "AppConfig.admin.listen_port"에서 최상위 구조체 이름을 제외한 경로를 반환합니다.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}
	return ns
}
