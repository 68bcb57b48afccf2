package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups blog posts
type Category struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// BlogCategory links a blog post to a category
type BlogCategory struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogID     uuid.UUID `json:"blogId" gorm:"type:uuid;not null;index:idx_blog_category_blog_id;uniqueIndex:idx_blog_category_unique"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;uniqueIndex:idx_blog_category_unique"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

func (bc *BlogCategory) BeforeCreate(tx *gorm.DB) error {
	assignID(&bc.ID)
	return nil
}
