package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a non-technology competence listed in the about section
type Skill struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	IconURL   string    `json:"iconUrl" gorm:"column:icon_url;type:text;not null;default:''"`
	Progress  Progress  `json:"progress" gorm:"type:text;not null;default:BEGINNER"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	if s.Progress == "" {
		s.Progress = ProgressBeginner
	}
	return nil
}
