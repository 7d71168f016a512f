// Package shortcode 게시물 본문의 [tag attr="value"] 형식 단축 코드를 찾아 등록된 핸들러의 출력으로 바꿉니다.
//
//	r := shortcode.NewRegistry()
//	r.Add("convertkit_form", formHandler)
//	html := r.Do(ctx, post.Content, embedder)
//
// 단축 코드는 다음 형식을 지원합니다.
//
//	[tag]  [tag attr="v"]  [tag /]  [tag]본문[/tag]  [[tag]] (이스케이프, 그대로 출력)
package shortcode

import (
	"context"
	"strings"
	"sync"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
)

// Embedder 폼 임베드 마크업을 만듭니다. 구현은 페이지 단위로 같은 폼이 두 번 출력되지 않도록 관리합니다.
type Embedder interface {
	FormEmbed(ctx context.Context, form kit.Form) string
}

// Call 핸들러 호출 정보
type Call struct {
	Ctx      context.Context
	Tag      string
	Attrs    Attrs
	Content  string
	Embedder Embedder
}

// Handler 단축 코드를 HTML로 바꿉니다. 출력할 것이 없으면 빈 문자열을 반환합니다.
type Handler func(call Call) string

// Registry 단축 코드 태그 → 핸들러
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry 빈 레지스트리를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Add tag 단축 코드의 핸들러를 등록합니다. 이미 있으면 교체합니다.
func (r *Registry) Add(tag string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[tag] = h
}

// Has tag 단축 코드가 등록되어 있는지 확인합니다.
func (r *Registry) Has(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[tag]
	return ok
}

func (r *Registry) handler(tag string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[tag]
}

// Do content의 단축 코드를 모두 핸들러 출력으로 바꿉니다. 등록되지 않은 태그는 그대로 둡니다.
func (r *Registry) Do(ctx context.Context, content string, e Embedder) string {
	if !strings.Contains(content, "[") {
		return content
	}

	var sb strings.Builder
	sb.Grow(len(content))

	i := 0
	for i < len(content) {
		open := strings.IndexByte(content[i:], '[')
		if open == -1 {
			sb.WriteString(content[i:])
			break
		}
		open += i
		sb.WriteString(content[i:open])

		m, ok := r.match(content, open)
		if !ok {
			sb.WriteByte('[')
			i = open + 1
			continue
		}

		if m.escaped && m.closingBracket {
			// [[tag]] 는 바깥 괄호만 벗겨서 출력한다.
			sb.WriteString(content[open+1 : m.end-1])
		} else {
			if m.escaped {
				sb.WriteByte('[')
			}
			sb.WriteString(r.handler(m.tag)(Call{
				Ctx:      ctx,
				Tag:      m.tag,
				Attrs:    ParseAttrs(m.attrText),
				Content:  m.content,
				Embedder: e,
			}))
			if m.closingBracket {
				sb.WriteByte(']')
			}
		}
		i = m.end
	}

	return sb.String()
}

type match struct {
	tag            string
	attrText       string
	content        string
	escaped        bool // 여는 괄호가 두 개 ([[tag)
	closingBracket bool // 닫는 괄호가 두 개 (tag]])
	end            int  // 매치 다음 위치
}

// match content[start]의 '['에서 시작하는 등록된 단축 코드를 찾습니다.
func (r *Registry) match(content string, start int) (match, bool) {
	var m match

	pos := start + 1
	if pos < len(content) && content[pos] == '[' {
		m.escaped = true
		pos++
	}

	nameStart := pos
	for pos < len(content) && isTagChar(content[pos]) {
		pos++
	}
	if pos == nameStart || pos >= len(content) {
		return m, false
	}
	// 태그 이름 바로 뒤에 '-'나 단어 문자가 오는 경우(예: [convertkit_form-x])는 위 반복에서 이미 소비되므로
	// 여기서는 등록 여부만 확인하면 된다.
	m.tag = content[nameStart:pos]
	if !r.Has(m.tag) {
		return m, false
	}

	// 속성: ']'가 나올 때까지. "/]" 는 자체 닫힘이다.
	attrStart := pos
	selfClosing := false
	for {
		if pos >= len(content) {
			return m, false
		}
		if content[pos] == ']' {
			break
		}
		if content[pos] == '/' && pos+1 < len(content) && content[pos+1] == ']' {
			selfClosing = true
			break
		}
		pos++
	}
	m.attrText = content[attrStart:pos]
	if selfClosing {
		pos += 2
	} else {
		pos++

		closeTag := "[/" + m.tag + "]"
		if idx := strings.Index(content[pos:], closeTag); idx != -1 && !strings.Contains(content[pos:pos+idx], "["+m.tag) {
			m.content = content[pos : pos+idx]
			pos += idx + len(closeTag)
		}
	}

	if pos < len(content) && content[pos] == ']' {
		m.closingBracket = true
		pos++
	}
	m.end = pos
	return m, true
}

func isTagChar(c byte) bool {
	return c == '_' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
