// Package handler 관리 화면 핸들러가 공유하는 요청 검증 도구를 제공합니다.
package handler

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 초기화된 validator 인스턴스를 반환합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// 에러 메시지에 korean 태그 값을 필드명으로 사용한다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if koreanName := fld.Tag.Get("korean"); koreanName != "" {
				return koreanName
			}
			return fld.Name
		})
	})

	return validate
}

// ValidateRequest 구조체의 validate 태그로 요청 값을 검증합니다.
func ValidateRequest(req any) error {
	return getValidator().Struct(req)
}

// FormatValidationError validator 에러를 한글 메시지로 변환합니다. 여러 에러가 있으면 첫 번째만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", fieldName)
	case "max":
		if fieldErr.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", fieldName, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s는 다음 중 하나여야 합니다: %s", fieldName, fieldErr.Param())
	case "numeric":
		return fmt.Sprintf("%s는 숫자여야 합니다", fieldName)
	default:
		return fmt.Sprintf("%s 검증 실패: %s", fieldName, fieldErr.Tag())
	}
}
