// Package resource Kit 계정의 폼, 랜딩 페이지, 태그 목록을 옵션 저장소에 캐시합니다.
//
// 관리 화면과 공개 페이지는 캐시만 읽고, Kit API 호출은 Refresher가 담당합니다.
package resource

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"github.com/darkkaiser/convertkit-admin/internal/kit"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/store"
)

// 리소스가 저장되는 옵션 이름
const (
	FormsKey        = "convertkit_forms"
	LandingPagesKey = "convertkit_landing_pages"
	TagsKey         = "convertkit_tags"
)

// Resource 캐시에 저장할 수 있는 리소스
type Resource interface {
	kit.Form | kit.LandingPage | kit.Tag
	ResourceID() int64
	ResourceName() string
}

// Collection 옵션 하나에 ID → 리소스 맵으로 저장되는 리소스 목록입니다.
type Collection[T Resource] struct {
	options store.Options
	key     string
}

// Get 캐시된 리소스를 이름순으로 반환합니다. 캐시가 없으면 빈 목록입니다.
func (c *Collection[T]) Get(ctx context.Context) ([]T, error) {
	m, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(m))
	for _, v := range m {
		items = append(items, v)
	}
	slices.SortFunc(items, func(a, b T) int {
		if n := cmp.Compare(a.ResourceName(), b.ResourceName()); n != 0 {
			return n
		}
		return cmp.Compare(a.ResourceID(), b.ResourceID())
	})
	return items, nil
}

// Exist 캐시된 리소스가 하나 이상 있는지 확인합니다.
func (c *Collection[T]) Exist(ctx context.Context) bool {
	m, err := c.load(ctx)
	return err == nil && len(m) > 0
}

// ByID id에 해당하는 리소스를 반환합니다. 없으면 ok가 false입니다.
func (c *Collection[T]) ByID(ctx context.Context, id int64) (item T, ok bool, err error) {
	m, err := c.load(ctx)
	if err != nil {
		return item, false, err
	}
	item, ok = m[strconv.FormatInt(id, 10)]
	return item, ok, nil
}

// Set 캐시를 items로 교체합니다.
func (c *Collection[T]) Set(ctx context.Context, items []T) error {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[strconv.FormatInt(item.ResourceID(), 10)] = item
	}
	return c.options.UpdateOption(ctx, c.key, m)
}

func (c *Collection[T]) load(ctx context.Context) (map[string]T, error) {
	var m map[string]T
	if err := c.options.GetOption(ctx, c.key, &m); err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Forms 폼 캐시
type Forms struct {
	Collection[kit.Form]
}

// NewForms 폼 캐시를 생성합니다.
func NewForms(options store.Options) *Forms {
	return &Forms{Collection[kit.Form]{options: options, key: FormsKey}}
}

// NonInline 모달, 슬라이드 인, 스티키 바 형식의 폼만 반환합니다.
func (f *Forms) NonInline(ctx context.Context) ([]kit.Form, error) {
	forms, err := f.Get(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(forms, func(form kit.Form) bool { return form.IsInline() }), nil
}

// NewLandingPages 랜딩 페이지 캐시를 생성합니다.
func NewLandingPages(options store.Options) *Collection[kit.LandingPage] {
	return &Collection[kit.LandingPage]{options: options, key: LandingPagesKey}
}

// NewTags 태그 캐시를 생성합니다.
func NewTags(options store.Options) *Collection[kit.Tag] {
	return &Collection[kit.Tag]{options: options, key: TagsKey}
}
