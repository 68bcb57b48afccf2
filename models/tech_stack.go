package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TechStack is a technology shown on the site and linkable to projects
type TechStack struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	IconURL   string    `json:"iconUrl" gorm:"column:icon_url;type:text;not null;default:''"`
	Progress  Progress  `json:"progress" gorm:"type:text;not null;default:BEGINNER"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ts *TechStack) BeforeCreate(tx *gorm.DB) error {
	assignID(&ts.ID)
	if ts.Progress == "" {
		ts.Progress = ProgressBeginner
	}
	return nil
}
