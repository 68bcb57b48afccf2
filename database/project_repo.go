package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func withProjectAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags.Tag").Preload("Techs.TechStack")
}

// FindAll returns all projects with their tags and tech stacks, most recently built first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := withProjectAssociations(r.db.WithContext(ctx)).
		Order("built_at DESC").Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindBySlug returns gorm.ErrRecordNotFound when no project has the slug
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (models.Project, error) {
	var project models.Project
	err := withProjectAssociations(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&project).Error
	return project, err
}

func (r *ProjectRepo) findByID(ctx context.Context, id uuid.UUID) (models.Project, error) {
	var project models.Project
	err := withProjectAssociations(r.db.WithContext(ctx)).First(&project, "id = ?", id).Error
	return project, err
}

// Create inserts project and links it to the named tags (created on demand) and the
// given tech stacks. Nothing is written when any tech stack id is unknown.
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project, tagNames, techIDs []string) (models.Project, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := resolveExisting(tx, &models.TechStack{}, "Tech stack", techIDs)
		if err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		project.Tags, project.Techs = nil, nil
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return r.syncAssociations(tx, project.ID, tags, techs)
	})
	if err != nil {
		return models.Project{}, err
	}
	return r.findByID(ctx, project.ID)
}

// Update replaces the fields of the project identified by slug and reconciles its
// tags and tech stacks so they equal exactly the given lists.
func (r *ProjectRepo) Update(ctx context.Context, slug string, changes *models.Project, tagNames, techIDs []string) (models.Project, error) {
	var id uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Project
		if err := tx.Where("slug = ?", slug).First(&existing).Error; err != nil {
			return err
		}
		id = existing.ID

		techs, err := resolveExisting(tx, &models.TechStack{}, "Tech stack", techIDs)
		if err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		err = tx.Model(&existing).
			Select("Name", "Description", "Detail", "ThumbnailURL", "GitLink", "ProjectLink", "YtLink", "Slug", "BuiltAt").
			Omit(clause.Associations).
			Updates(changes).Error
		if err != nil {
			return err
		}
		return r.syncAssociations(tx, id, tags, techs)
	})
	if err != nil {
		return models.Project{}, err
	}
	return r.findByID(ctx, id)
}

func (r *ProjectRepo) syncAssociations(tx *gorm.DB, projectID uuid.UUID, tags, techs []uuid.UUID) error {
	err := reconcileJoins(tx, "project_id", projectID, tags,
		func(pt models.ProjectTag) uuid.UUID { return pt.ID },
		func(pt models.ProjectTag) uuid.UUID { return pt.TagID },
		func(tagID uuid.UUID) models.ProjectTag { return models.ProjectTag{ProjectID: projectID, TagID: tagID} },
	)
	if err != nil {
		return err
	}
	return reconcileJoins(tx, "project_id", projectID, techs,
		func(pt models.ProjectTechStack) uuid.UUID { return pt.ID },
		func(pt models.ProjectTechStack) uuid.UUID { return pt.TechStackID },
		func(techID uuid.UUID) models.ProjectTechStack {
			return models.ProjectTechStack{ProjectID: projectID, TechStackID: techID}
		},
	)
}

// DeleteBySlug removes the project and its join rows together
func (r *ProjectRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("slug = ?", slug).First(&project).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTechStack{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Project{}, project.ID)
	})
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&n).Error
	return n, err
}
