// Package sqlstore gorm 기반의 store.Store 구현체입니다. SQLite와 PostgreSQL을 지원합니다.
package sqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/darkkaiser/convertkit-admin/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store gorm.DB 위에 옵션, 게시물 메타, 게시물 테이블을 관리합니다.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open 드라이버("sqlite" 또는 "postgres")와 DSN으로 데이터베이스에 연결하고 스키마를 마이그레이션합니다.
// sqlite의 DSN은 파일 경로이며, ":memory:"를 사용할 수 있습니다.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 데이터베이스 드라이버입니다: '%s'", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "데이터베이스 연결 실패 (driver=%s)", driver)
	}

	if driver == "sqlite" {
		// SQLite는 단일 쓰기 연결에서만 안전하게 동작한다. 메모리 DB는 연결마다 별도의 DB가 생긴다.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, "데이터베이스 연결 풀 조회 실패")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return New(db)
}

// New 이미 연결된 gorm.DB로 Store를 생성하고 스키마를 마이그레이션합니다.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&optionModel{}, &postMetaModel{}, &postModel{}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "데이터베이스 스키마 마이그레이션 실패")
	}
	return &Store{db: db}, nil
}

// Close 데이터베이스 연결을 닫습니다.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func (s *Store) GetOption(ctx context.Context, name string, v any) error {
	var m optionModel
	if err := s.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		return translate(err, name)
	}
	return decode(m.Value, v, name)
}

func (s *Store) UpdateOption(ctx context.Context, name string, v any) error {
	value, err := encode(v, name)
	if err != nil {
		return err
	}

	m := optionModel{Name: name, Value: value, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return apperrors.Wrapf(err, apperrors.System, "옵션 저장 실패 (name=%s)", name)
	}
	return nil
}

func (s *Store) DeleteOption(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Delete(&optionModel{}, "name = ?", name).Error; err != nil {
		return apperrors.Wrapf(err, apperrors.System, "옵션 삭제 실패 (name=%s)", name)
	}
	return nil
}

func (s *Store) GetPostMeta(ctx context.Context, postID int64, key string, v any) error {
	var m postMetaModel
	if err := s.db.WithContext(ctx).First(&m, "post_id = ? AND meta_key = ?", postID, key).Error; err != nil {
		return translate(err, key)
	}
	return decode(m.MetaValue, v, key)
}

func (s *Store) UpdatePostMeta(ctx context.Context, postID int64, key string, v any) error {
	value, err := encode(v, key)
	if err != nil {
		return err
	}

	m := postMetaModel{PostID: postID, MetaKey: key, MetaValue: value}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&m).Error
	if err != nil {
		return apperrors.Wrapf(err, apperrors.System, "게시물 메타 저장 실패 (post_id=%d, key=%s)", postID, key)
	}
	return nil
}

func (s *Store) DeletePostMeta(ctx context.Context, postID int64, key string) error {
	if err := s.db.WithContext(ctx).Delete(&postMetaModel{}, "post_id = ? AND meta_key = ?", postID, key).Error; err != nil {
		return apperrors.Wrapf(err, apperrors.System, "게시물 메타 삭제 실패 (post_id=%d, key=%s)", postID, key)
	}
	return nil
}

func (s *Store) InsertPost(ctx context.Context, p *store.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := store.Slugify(p.Slug)
		if base == "" {
			base = store.Slugify(p.Title)
		}

		if base == "" {
			base = p.Type
		}

		slug := base
		for i := 2; s.slugTaken(tx, slug); i++ {
			slug = fmt.Sprintf("%s-%d", base, i)
		}

		if p.Status == "" {
			p.Status = store.PostStatusDraft
		}
		p.Slug = slug

		m := fromDomain(p)
		m.ID = 0
		if err := tx.Create(m).Error; err != nil {
			return apperrors.Wrap(err, apperrors.System, "게시물 저장 실패")
		}

		*p = *m.toDomain()
		return nil
	})
}

func (s *Store) slugTaken(tx *gorm.DB, slug string) bool {
	var count int64
	tx.Model(&postModel{}).Where("slug = ?", slug).Count(&count)
	return count > 0
}

func (s *Store) UpdatePost(ctx context.Context, p *store.Post) error {
	updates := map[string]any{
		"type":       p.Type,
		"title":      p.Title,
		"content":    p.Content,
		"status":     p.Status,
		"updated_at": time.Now(),
	}
	if p.Slug != "" {
		updates["slug"] = p.Slug
	}

	res := s.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", p.ID).Updates(updates)
	if res.Error != nil {
		return apperrors.Wrapf(res.Error, apperrors.System, "게시물 수정 실패 (id=%d)", p.ID)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (*store.Post, error) {
	var m postModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("post:%d", id))
	}
	return m.toDomain(), nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*store.Post, error) {
	var m postModel
	if err := s.db.WithContext(ctx).First(&m, "slug = ?", slug).Error; err != nil {
		return nil, translate(err, "post:"+slug)
	}
	return m.toDomain(), nil
}

func (s *Store) ListPosts(ctx context.Context, postType string) ([]*store.Post, error) {
	query := s.db.WithContext(ctx).Model(&postModel{}).Order("id ASC")
	if postType != "" {
		query = query.Where("type = ?", postType)
	}

	var models []postModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "게시물 목록 조회 실패")
	}

	posts := make([]*store.Post, len(models))
	for i := range models {
		posts[i] = models[i].toDomain()
	}
	return posts, nil
}

func translate(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return apperrors.Wrapf(err, apperrors.System, "데이터베이스 조회 실패 (key=%s)", key)
}

func encode(v any, key string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.Internal, "데이터 직렬화 실패 (key=%s)", key)
	}
	return string(data), nil
}

func decode(value string, v any, key string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return store.ErrLoadRequiresPointer
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return apperrors.Wrapf(err, apperrors.ParsingFailed, "저장된 데이터 역직렬화 실패 (key=%s)", key)
	}
	return nil
}
