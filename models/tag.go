package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label attached to projects. Tags are created on first use.
type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
