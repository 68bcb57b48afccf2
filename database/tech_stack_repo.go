package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type TechStackRepo struct {
	db *gorm.DB
}

func NewTechStackRepo(db *gorm.DB) *TechStackRepo {
	return &TechStackRepo{db}
}

func (r *TechStackRepo) FindAll(ctx context.Context) ([]models.TechStack, error) {
	var techs []models.TechStack
	err := r.db.WithContext(ctx).Order("name ASC").Find(&techs).Error
	return techs, err
}

func (r *TechStackRepo) FindByID(ctx context.Context, id uuid.UUID) (models.TechStack, error) {
	var tech models.TechStack
	err := r.db.WithContext(ctx).First(&tech, "id = ?", id).Error
	return tech, err
}

func (r *TechStackRepo) FindByName(ctx context.Context, name string) (models.TechStack, error) {
	var tech models.TechStack
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tech).Error
	return tech, err
}

func (r *TechStackRepo) Create(ctx context.Context, tech *models.TechStack) error {
	return r.db.WithContext(ctx).Create(tech).Error
}

// Update overwrites name, icon and progress of the tech stack with the given id
func (r *TechStackRepo) Update(ctx context.Context, id uuid.UUID, changes *models.TechStack) (models.TechStack, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.TechStack{}).Where("id = ?", id).
		Select("Name", "IconURL", "Progress").
		Updates(changes)
	if res.Error != nil {
		return models.TechStack{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.TechStack{}, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the tech stack and unlinks it from every project
func (r *TechStackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tech_stack_id = ?", id).Delete(&models.ProjectTechStack{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.TechStack{}, id)
	})
}

func (r *TechStackRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.TechStack{}).Count(&n).Error
	return n, err
}
