package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectTechStack links a project to a tech stack
type ProjectTechStack struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   uuid.UUID `json:"projectId" gorm:"type:uuid;not null;index:idx_project_tech_project_id;uniqueIndex:idx_project_tech_unique"`
	TechStackID uuid.UUID `json:"techStackId" gorm:"type:uuid;not null;uniqueIndex:idx_project_tech_unique"`

	TechStack *TechStack `json:"tech,omitempty" gorm:"foreignKey:TechStackID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProjectTechStack) TableName() string {
	return "project_tech_stacks"
}

func (pt *ProjectTechStack) BeforeCreate(tx *gorm.DB) error {
	assignID(&pt.ID)
	return nil
}
