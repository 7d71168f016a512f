package settings

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Values 설정 필드 이름 → 값. 폼 제출 값과 저장된 옵션 모두 이 형태입니다.
type Values map[string]any

// String key의 값을 문자열로 반환합니다. 값이 없으면 빈 문자열입니다.
func (v Values) String(key string) string {
	switch x := v[key].(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Bool 체크박스 값("on")을 bool로 해석합니다.
func (v Values) Bool(key string) bool {
	return parseFlag(v.String(key))
}

// Merge defaults 위에 v를 덮어쓴 새 맵을 반환합니다. v에 있는 키가 우선합니다.
func (v Values) Merge(defaults Values) Values {
	out := make(Values, len(defaults)+len(v))
	maps.Copy(out, defaults)
	maps.Copy(out, v)
	return out
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

// flagHookFunc 체크박스 문자열을 bool 필드로 변환합니다.
func flagHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() == reflect.String && to.Kind() == reflect.Bool {
			return parseFlag(data.(string)), nil
		}
		return data, nil
	}
}

// decode v를 mapstructure 태그가 붙은 구조체로 변환합니다.
func decode(v Values, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       flagHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(v))
}
