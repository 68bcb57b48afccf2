package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

func (r *BlogRepo) scope(ctx context.Context, publishedOnly bool) *gorm.DB {
	db := r.db.WithContext(ctx).Preload("Categories.Category")
	if publishedOnly {
		db = db.Where("published = ?", true)
	}
	return db
}

// FindAll returns blogs newest first; drafts are skipped when publishedOnly is set
func (r *BlogRepo) FindAll(ctx context.Context, publishedOnly bool) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.scope(ctx, publishedOnly).Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepo) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (models.Blog, error) {
	var blog models.Blog
	err := r.scope(ctx, publishedOnly).Where("slug = ?", slug).First(&blog).Error
	return blog, err
}

func (r *BlogRepo) findByID(ctx context.Context, id uuid.UUID) (models.Blog, error) {
	var blog models.Blog
	err := r.scope(ctx, false).First(&blog, "id = ?", id).Error
	return blog, err
}

// Create inserts blog linked to the given categories, all or nothing
func (r *BlogRepo) Create(ctx context.Context, blog *models.Blog, categoryIDs []string) (models.Blog, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := resolveExisting(tx, &models.Category{}, "Category", categoryIDs)
		if err != nil {
			return err
		}
		blog.Categories = nil
		if err := tx.Omit(clause.Associations).Create(blog).Error; err != nil {
			return err
		}
		return syncBlogCategories(tx, blog.ID, categories)
	})
	if err != nil {
		return models.Blog{}, err
	}
	return r.findByID(ctx, blog.ID)
}

func (r *BlogRepo) Update(ctx context.Context, slug string, changes *models.Blog, categoryIDs []string) (models.Blog, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Blog
		if err := tx.Where("slug = ?", slug).First(&existing).Error; err != nil {
			return err
		}
		id = existing.ID

		categories, err := resolveExisting(tx, &models.Category{}, "Category", categoryIDs)
		if err != nil {
			return err
		}
		err = tx.Model(&existing).
			Select("Title", "Content", "ThumbnailURL", "Slug", "Published").
			Omit(clause.Associations).
			Updates(changes).Error
		if err != nil {
			return err
		}
		return syncBlogCategories(tx, id, categories)
	})
	if err != nil {
		return models.Blog{}, err
	}
	return r.findByID(ctx, id)
}

func syncBlogCategories(tx *gorm.DB, blogID uuid.UUID, categories []uuid.UUID) error {
	return reconcileJoins(tx, "blog_id", blogID, categories,
		func(bc models.BlogCategory) uuid.UUID { return bc.ID },
		func(bc models.BlogCategory) uuid.UUID { return bc.CategoryID },
		func(categoryID uuid.UUID) models.BlogCategory {
			return models.BlogCategory{BlogID: blogID, CategoryID: categoryID}
		},
	)
}

func (r *BlogRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog models.Blog
		if err := tx.Where("slug = ?", slug).First(&blog).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.BlogCategory{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Blog{}, blog.ID)
	})
}

func (r *BlogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Blog{}).Count(&n).Error
	return n, err
}
