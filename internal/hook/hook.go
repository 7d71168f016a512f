// Package hook 관리 화면 렌더링 중간에 다른 컴포넌트가 출력을 끼워 넣을 수 있는 이름 기반 액션 레지스트리입니다.
//
//	hooks.Add(hook.AdminNotices, 10, notices.Output)
//	hooks.Do(w, hook.AdminNotices, hook.Event{Ctx: ctx, Screen: "dashboard", Viewer: user})
package hook

import (
	"context"
	"io"
	"sort"
	"sync"
)

// 애플리케이션이 실행하는 액션 이름
const (
	// AdminNotices 관리 화면 상단에 알림을 출력할 때 실행됩니다.
	AdminNotices = "admin_notices"

	// SettingsRenderBefore, SettingsRenderAfter 설정 섹션 렌더링 전후에 실행됩니다.
	SettingsRenderBefore = "convertkit_settings_base_render_before"
	SettingsRenderAfter  = "convertkit_settings_base_render_after"
)

// DefaultPriority 우선순위를 지정하지 않을 때 사용하는 값입니다. 값이 작을수록 먼저 실행됩니다.
const DefaultPriority = 10

// Viewer 현재 요청을 보낸 사용자의 권한을 확인합니다.
type Viewer interface {
	Can(capability string) bool
}

// Event 액션에 전달되는 실행 문맥입니다.
type Event struct {
	Ctx    context.Context
	Screen string // 현재 관리 화면 식별자 (예: settings_page__wp_convertkit_settings)
	Viewer Viewer
	Args   map[string]any
}

// Action 출력 대상 w에 HTML 조각을 기록합니다.
type Action func(w io.Writer, e Event) error

type registered struct {
	priority int
	seq      int
	fn       Action
}

// Registry 액션 레지스트리입니다. 동시 사용에 안전합니다.
type Registry struct {
	mu      sync.RWMutex
	seq     int
	actions map[string][]registered
}

// NewRegistry 빈 레지스트리를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string][]registered)}
}

// Add name 액션에 fn을 등록합니다. 같은 우선순위는 등록 순서대로 실행됩니다.
func (r *Registry) Add(name string, priority int, fn Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	list := append(r.actions[name], registered{priority: priority, seq: r.seq, fn: fn})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
	r.actions[name] = list
}

// Has name 액션에 등록된 함수가 있는지 확인합니다.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[name]) > 0
}

// Do name 액션에 등록된 함수를 순서대로 실행합니다. 처음 발생한 에러에서 중단합니다.
func (r *Registry) Do(w io.Writer, name string, e Event) error {
	if e.Ctx == nil {
		e.Ctx = context.Background()
	}

	r.mu.RLock()
	list := append([]registered(nil), r.actions[name]...)
	r.mu.RUnlock()

	for _, a := range list {
		if err := a.fn(w, e); err != nil {
			return err
		}
	}
	return nil
}
