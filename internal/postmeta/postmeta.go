// Package postmeta 게시물별 폼, 랜딩 페이지, 태그 지정 값을 다룹니다.
package postmeta

import (
	"context"
	"strconv"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/store"
)

// Key 게시물 메타 키
const Key = "_wp_convertkit_post_meta"

// 폼 지정 값
const (
	FormDefault = "-1" // 게시물 유형의 기본 폼 사용
	FormNone    = "0"  // 폼을 출력하지 않음
)

// Settings 게시물 하나의 지정 값
type Settings struct {
	Form        string `json:"form"`
	LandingPage string `json:"landing_page"`
	Tag         string `json:"tag"`
}

// Defaults 메타가 없는 게시물의 값입니다.
func Defaults() Settings {
	return Settings{Form: FormDefault, LandingPage: "", Tag: ""}
}

// UsesDefaultForm 게시물 유형의 기본 폼을 사용하는지 확인합니다.
func (s Settings) UsesDefaultForm() bool {
	return s.Form == FormDefault || s.Form == ""
}

// FormID 게시물에 직접 지정된 폼 ID를 반환합니다. 기본값 사용이거나 "없음"이면 0입니다.
func (s Settings) FormID() int64 {
	id, err := strconv.ParseInt(s.Form, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// Store 게시물 메타 저장소
type Store struct {
	meta store.PostMeta
}

// NewStore Store를 생성합니다.
func NewStore(meta store.PostMeta) *Store {
	return &Store{meta: meta}
}

// Get 게시물의 지정 값을 반환합니다. 저장된 값이 없으면 Defaults입니다.
func (s *Store) Get(ctx context.Context, postID int64) (Settings, error) {
	v := Defaults()
	if err := s.meta.GetPostMeta(ctx, postID, Key, &v); err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return Defaults(), nil
		}
		return Settings{}, err
	}
	if v.Form == "" {
		v.Form = FormDefault
	}
	return v, nil
}

// Save 게시물의 지정 값을 저장합니다.
func (s *Store) Save(ctx context.Context, postID int64, v Settings) error {
	return s.meta.UpdatePostMeta(ctx, postID, Key, v)
}

// Delete 게시물의 지정 값을 삭제합니다.
func (s *Store) Delete(ctx context.Context, postID int64) error {
	return s.meta.DeletePostMeta(ctx, postID, Key)
}
