package sqlstore

import (
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/store"
)

type optionModel struct {
	Name      string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (optionModel) TableName() string { return "options" }

type postMetaModel struct {
	PostID    int64  `gorm:"primaryKey;autoIncrement:false"`
	MetaKey   string `gorm:"primaryKey;size:191"`
	MetaValue string `gorm:"type:text;not null"`
}

func (postMetaModel) TableName() string { return "postmeta" }

type postModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Type      string `gorm:"size:20;index;not null"`
	Slug      string `gorm:"size:200;uniqueIndex;not null"`
	Title     string `gorm:"type:text"`
	Content   string `gorm:"type:text"`
	Status    string `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postModel) TableName() string { return "posts" }

func (m *postModel) toDomain() *store.Post {
	return &store.Post{
		ID:        m.ID,
		Type:      m.Type,
		Slug:      m.Slug,
		Title:     m.Title,
		Content:   m.Content,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomain(p *store.Post) *postModel {
	return &postModel{
		ID:        p.ID,
		Type:      p.Type,
		Slug:      p.Slug,
		Title:     p.Title,
		Content:   p.Content,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
