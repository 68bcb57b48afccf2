package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a portfolio project with its tag and tech stack memberships
type Project struct {
	ID           uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string             `json:"name" gorm:"type:text;not null"`
	Description  string             `json:"description" gorm:"type:text;not null"`
	Detail       *string            `json:"detail,omitempty" gorm:"type:text"`
	ThumbnailURL string             `json:"thumbnailUrl" gorm:"column:thumbnail_url;type:text;not null;default:''"`
	GitLink      string             `json:"gitLink" gorm:"type:text;not null"`
	ProjectLink  *string            `json:"projectLink,omitempty" gorm:"type:text"`
	YtLink       *string            `json:"ytLink,omitempty" gorm:"type:text"`
	Slug         string             `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	BuiltAt      string             `json:"builtAt" gorm:"type:text;not null"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Tags         []ProjectTag       `json:"tags" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Techs        []ProjectTechStack `json:"techs" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// TagNames returns the names of the tags linked to the project, in join order.
func (p Project) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, pt := range p.Tags {
		if pt.Tag != nil {
			names = append(names, pt.Tag.Name)
		}
	}
	return names
}

// TechIDs returns the ids of the tech stacks linked to the project.
func (p Project) TechIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Techs))
	for _, pt := range p.Techs {
		ids = append(ids, pt.TechStackID)
	}
	return ids
}
