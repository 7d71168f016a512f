package shortcode

import (
	"regexp"
	"strconv"
	"strings"
)

// attrRegexp key="v", key='v', key=v, "v", 'v', v 형식의 속성을 순서대로 찾습니다.
var attrRegexp = regexp.MustCompile(`([\w-]+)\s*=\s*"([^"]*)"(?:\s|$)|([\w-]+)\s*=\s*'([^']*)'(?:\s|$)|([\w-]+)\s*=\s*([^\s'"]+)(?:\s|$)|"([^"]*)"(?:\s|$)|'([^']*)'(?:\s|$)|(\S+)(?:\s|$)`)

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u200b", " ")

// Attrs 속성 이름(소문자) → 값. 이름 없는 값은 "0", "1", ... 키로 저장됩니다.
type Attrs map[string]string

// Get name 속성 값을 반환합니다.
func (a Attrs) Get(name string) string {
	return a[name]
}

// GetOr name 속성이 비어 있으면 def를 반환합니다.
func (a Attrs) GetOr(name, def string) string {
	if v := a[name]; v != "" {
		return v
	}
	return def
}

// ParseAttrs 단축 코드 속성 문자열을 해석합니다.
func ParseAttrs(text string) Attrs {
	attrs := Attrs{}
	text = spaceReplacer.Replace(text)

	positional := 0
	for _, m := range attrRegexp.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			attrs[strings.ToLower(m[1])] = m[2]
		case m[3] != "":
			attrs[strings.ToLower(m[3])] = m[4]
		case m[5] != "":
			attrs[strings.ToLower(m[5])] = m[6]
		case m[7] != "" || strings.HasPrefix(m[0], `"`):
			attrs[strconv.Itoa(positional)] = m[7]
			positional++
		case m[8] != "" || strings.HasPrefix(m[0], `'`):
			attrs[strconv.Itoa(positional)] = m[8]
			positional++
		default:
			attrs[strconv.Itoa(positional)] = m[9]
			positional++
		}
	}
	return attrs
}
