package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// FindAll returns contact messages newest first
func (r *MessageRepo) FindAll(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepo) FindByID(ctx context.Context, id uuid.UUID) (models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	return message, err
}

// Create stores a new unread message
func (r *MessageRepo) Create(ctx context.Context, message *models.Message) error {
	message.Read = false
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepo) SetRead(ctx context.Context, id uuid.UUID, read bool) (models.Message, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Update("read", read)
	if res.Error != nil {
		return models.Message{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Message{}, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Message{}, id)
}

func (r *MessageRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Count(&n).Error
	return n, err
}

func (r *MessageRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("read = ?", false).Count(&n).Error
	return n, err
}
