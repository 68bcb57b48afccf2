package database

import (
	"context"
	"strings"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns every tag ordered by name
func (r *TagRepo) FindAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindOrCreate returns the tag called name, inserting it first when it does not exist.
// Concurrent callers with the same name all get the single stored row.
func (r *TagRepo) FindOrCreate(ctx context.Context, name string) (models.Tag, error) {
	return findOrCreateTag(r.db.WithContext(ctx), strings.TrimSpace(name))
}

func (r *TagRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Count(&n).Error
	return n, err
}
