package store

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// KV 바이트 값을 키 단위로 저장하는 하위 저장소입니다. 키는 '/'로 구분된 세그먼트로 구성됩니다.
type KV interface {
	// Load 값이 없으면 ErrNotFound를 반환합니다.
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error

	// Delete 존재하지 않는 키를 삭제해도 에러가 아닙니다.
	Delete(key string) error

	// Keys prefix로 시작하는 키 목록을 반환합니다.
	Keys(prefix string) ([]string, error)

	Close() error
}

const (
	optionPrefix   = "option/"
	postMetaPrefix = "postmeta/"
	postPrefix     = "post/"
	postSeqKey     = "sequence/post"
)

// kvStore KV 위에 옵션, 메타, 게시물 저장소를 구성합니다.
type kvStore struct {
	kv KV

	// postMu 게시물 ID 발급과 slug 중복 검사를 직렬화합니다.
	postMu sync.Mutex

	now func() time.Time
}

var _ Store = (*kvStore)(nil)

// NewKVStore KV를 기반으로 하는 Store를 생성합니다.
func NewKVStore(kv KV) Store {
	return &kvStore{kv: kv, now: time.Now}
}

// NewMemoryStore 프로세스 메모리에만 보관하는 Store를 생성합니다.
func NewMemoryStore() Store {
	return NewKVStore(NewMemoryKV())
}

func (s *kvStore) Close() error {
	return s.kv.Close()
}

func (s *kvStore) GetOption(_ context.Context, name string, v any) error {
	return s.load(optionPrefix+name, v)
}

func (s *kvStore) UpdateOption(_ context.Context, name string, v any) error {
	return s.save(optionPrefix+name, v)
}

func (s *kvStore) DeleteOption(_ context.Context, name string) error {
	key := optionPrefix + name
	if err := s.kv.Delete(key); err != nil {
		return newErrWriteFailed(err, key)
	}
	return nil
}

func postMetaKey(postID int64, key string) string {
	return postMetaPrefix + strconv.FormatInt(postID, 10) + "/" + key
}

func (s *kvStore) GetPostMeta(_ context.Context, postID int64, key string, v any) error {
	return s.load(postMetaKey(postID, key), v)
}

func (s *kvStore) UpdatePostMeta(_ context.Context, postID int64, key string, v any) error {
	return s.save(postMetaKey(postID, key), v)
}

func (s *kvStore) DeletePostMeta(_ context.Context, postID int64, key string) error {
	k := postMetaKey(postID, key)
	if err := s.kv.Delete(k); err != nil {
		return newErrWriteFailed(err, k)
	}
	return nil
}

func postKey(id int64) string {
	return postPrefix + strconv.FormatInt(id, 10)
}

func (s *kvStore) InsertPost(ctx context.Context, p *Post) error {
	s.postMu.Lock()
	defer s.postMu.Unlock()

	var seq int64
	if err := s.load(postSeqKey, &seq); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	seq++

	posts, err := s.ListPosts(ctx, "")
	if err != nil {
		return err
	}
	slug, err := uniqueSlug(Slugify(firstNonEmpty(p.Slug, p.Title)), seq, func(candidate string) (bool, error) {
		for _, other := range posts {
			if other.Slug == candidate {
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return err
	}

	now := s.now()
	p.ID = seq
	p.Slug = slug
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = PostStatusDraft
	}

	if err := s.save(postSeqKey, seq); err != nil {
		return err
	}
	return s.save(postKey(p.ID), p)
}

func (s *kvStore) UpdatePost(ctx context.Context, p *Post) error {
	s.postMu.Lock()
	defer s.postMu.Unlock()

	existing, err := s.GetPost(ctx, p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	if p.Slug == "" {
		p.Slug = existing.Slug
	}
	return s.save(postKey(p.ID), p)
}

func (s *kvStore) GetPost(_ context.Context, id int64) (*Post, error) {
	var p Post
	if err := s.load(postKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *kvStore) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	posts, err := s.ListPosts(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *kvStore) ListPosts(_ context.Context, postType string) ([]*Post, error) {
	keys, err := s.kv.Keys(postPrefix)
	if err != nil {
		return nil, newErrReadFailed(err, postPrefix)
	}

	posts := make([]*Post, 0, len(keys))
	for _, key := range keys {
		if strings.Contains(strings.TrimPrefix(key, postPrefix), "/") {
			continue
		}

		var p Post
		if err := s.load(key, &p); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		if postType == "" || p.Type == postType {
			posts = append(posts, &p)
		}
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (s *kvStore) load(key string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrLoadRequiresPointer
	}

	data, err := s.kv.Load(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return newErrReadFailed(err, key)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return newErrUnmarshalFailed(err, key)
	}
	return nil
}

func (s *kvStore) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return newErrMarshalFailed(err, key)
	}
	if err := s.kv.Save(key, data); err != nil {
		return newErrWriteFailed(err, key)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
