package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db            *gorm.DB
	userRepo      *UserRepo
	projectRepo   *ProjectRepo
	tagRepo       *TagRepo
	techStackRepo *TechStackRepo
	skillRepo     *SkillRepo
	messageRepo   *MessageRepo
	blogRepo      *BlogRepo
	categoryRepo  *CategoryRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:            db,
		userRepo:      NewUserRepo(db),
		projectRepo:   NewProjectRepo(db),
		tagRepo:       NewTagRepo(db),
		techStackRepo: NewTechStackRepo(db),
		skillRepo:     NewSkillRepo(db),
		messageRepo:   NewMessageRepo(db),
		blogRepo:      NewBlogRepo(db),
		categoryRepo:  NewCategoryRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) TechStackRepo() *TechStackRepo {
	return d.techStackRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

// GetDB returns the underlying database connection for debugging purposes
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// AutoMigrate creates or updates every table the models map.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// UseReplicas routes reads to the given replicas; writes and transactions stay on the primary.
func UseReplicas(db *gorm.DB, replicas ...gorm.Dialector) error {
	if len(replicas) == 0 {
		return nil
	}
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
}

// Ping checks that the primary connection is alive.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SeedAdmin makes sure an ADMIN account exists for email. An existing user is promoted.
// It reports whether a new row was created.
func (d Database) SeedAdmin(ctx context.Context, name, email, passwordHash string) (bool, error) {
	user, err := d.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			return false, nil
		}
		return false, d.userRepo.SetRole(ctx, user.ID, models.RoleAdmin)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}

	admin := &models.User{Name: name, Email: email, Password: passwordHash, Role: models.RoleAdmin}
	if err := d.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}
