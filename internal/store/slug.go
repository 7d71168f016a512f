package store

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify 제목을 URL 경로에 사용할 수 있는 slug로 변환합니다.
// 영문자와 숫자(한글 포함)만 남기고 나머지는 '-'로 합칩니다.
//
//	Slugify("Form Trigger: Shortcode") // "form-trigger-shortcode"
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueSlug exists가 false를 반환할 때까지 "-2", "-3" 접미사를 붙여 고유한 slug를 만듭니다.
func uniqueSlug(base string, fallbackID int64, exists func(string) (bool, error)) (string, error) {
	if base == "" {
		base = strconv.FormatInt(fallbackID, 10)
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
}
