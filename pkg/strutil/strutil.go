// Package strutil 문자열 마스킹 등 공용 문자열 유틸리티를 제공합니다.
package strutil

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

	attrReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// Mask 로그 기록용으로 민감한 값을 가립니다. 앞 4자만 남기고 나머지는 "***"로 대체합니다.
//
//	Mask("secret123") // "secr***"
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) <= 4 {
		return "***"
	}
	return string([]rune(s)[:4]) + "***"
}

// MaskAllButLast 마지막 keep개의 문자만 남기고 나머지를 mask 문자로 대체합니다.
// 문자열 길이가 keep 이하이면 전체를 가립니다.
//
//	MaskAllButLast("abcdefgh", 4, '*') // "****efgh"
func MaskAllButLast(s string, keep int, mask rune) string {
	runes := []rune(s)
	if len(runes) <= keep {
		return strings.Repeat(string(mask), len(runes))
	}
	return strings.Repeat(string(mask), len(runes)-keep) + string(runes[len(runes)-keep:])
}

// StripHTMLTags HTML 태그를 제거하고 엔티티를 디코딩한 순수 텍스트를 반환합니다.
func StripHTMLTags(s string) string {
	return html.UnescapeString(htmlTagRegexp.ReplaceAllString(s, ""))
}

// EscapeAttr HTML 속성 값으로 출력할 문자열을 이스케이프합니다.
// 큰따옴표는 &quot;, 작은따옴표는 &#039;로 바뀝니다.
//
//	EscapeAttr(`red" onmouseover="alert(1)"`) // `red&quot; onmouseover=&quot;alert(1)&quot;`
func EscapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
