package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectTag links a project to a tag
type ProjectTag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"projectId" gorm:"type:uuid;not null;index:idx_project_tag_project_id;uniqueIndex:idx_project_tag_unique"`
	TagID     uuid.UUID `json:"tagId" gorm:"type:uuid;not null;uniqueIndex:idx_project_tag_unique"`

	Tag *Tag `json:"tag,omitempty" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}

func (pt *ProjectTag) BeforeCreate(tx *gorm.DB) error {
	assignID(&pt.ID)
	return nil
}
