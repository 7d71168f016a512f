// Package store 옵션(option), 게시물 메타(post meta), 게시물(post) 저장소를 정의합니다.
//
// 값은 JSON으로 직렬화되어 저장되며, 읽기-수정-쓰기 순서로 갱신하는 호출자(알림 목록, 설정 저장 등)에
// 대해서는 낙관적 동시성 제어를 제공하지 않습니다. 동시에 저장하면 마지막 쓰기가 남습니다.
package store

import (
	"context"
	"io"
	"time"
)

// 게시물 상태
const (
	PostStatusDraft   = "draft"
	PostStatusPublish = "publish"
)

// Options 이름 단위로 설정 값을 저장하는 옵션 저장소입니다.
type Options interface {
	// GetOption 저장된 값을 v에 역직렬화합니다. 값이 없으면 ErrNotFound를 반환합니다.
	GetOption(ctx context.Context, name string, v any) error
	UpdateOption(ctx context.Context, name string, v any) error
	DeleteOption(ctx context.Context, name string) error
}

// PostMeta 게시물 단위로 키-값을 저장하는 메타 저장소입니다.
type PostMeta interface {
	// GetPostMeta 저장된 값을 v에 역직렬화합니다. 값이 없으면 ErrNotFound를 반환합니다.
	GetPostMeta(ctx context.Context, postID int64, key string, v any) error
	UpdatePostMeta(ctx context.Context, postID int64, key string, v any) error
	DeletePostMeta(ctx context.Context, postID int64, key string) error
}

// Posts 페이지, 글, 사용자 정의 유형의 게시물 저장소입니다.
type Posts interface {
	// InsertPost 새 게시물을 저장하고 ID와 고유한 Slug를 채웁니다.
	InsertPost(ctx context.Context, p *Post) error
	UpdatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id int64) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)

	// ListPosts 게시물 유형별 목록을 ID 오름차순으로 반환합니다. postType이 비어 있으면 전체를 반환합니다.
	ListPosts(ctx context.Context, postType string) ([]*Post, error)
}

// Store 애플리케이션이 사용하는 모든 저장소를 묶은 인터페이스입니다.
type Store interface {
	Options
	PostMeta
	Posts
	io.Closer
}

// Post 게시물
type Post struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished 공개 페이지로 노출 가능한 상태인지 확인합니다.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublish
}
