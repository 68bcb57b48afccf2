package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog represents a blog post with its categories
type Blog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string         `json:"title" gorm:"type:text;not null"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	ThumbnailURL string         `json:"thumbnailUrl" gorm:"column:thumbnail_url;type:text;not null;default:''"`
	Slug         string         `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Published    bool           `json:"published" gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Categories   []BlogCategory `json:"categories" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}
