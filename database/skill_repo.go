package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	return skill, err
}

func (r *SkillRepo) FindByName(ctx context.Context, name string) (models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&skill).Error
	return skill, err
}

func (r *SkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *SkillRepo) Update(ctx context.Context, id uuid.UUID, changes *models.Skill) (models.Skill, error) {
	res := r.db.WithContext(ctx).Model(&models.Skill{}).Where("id = ?", id).
		Select("Name", "IconURL", "Progress").
		Updates(changes)
	if res.Error != nil {
		return models.Skill{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Skill{}, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Skill{}, id)
}

func (r *SkillRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Skill{}).Count(&n).Error
	return n, err
}
