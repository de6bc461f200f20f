package repository

import (
	"context"
	"time"

	"jobboard/models"

	"gorm.io/gorm"
)

type gormNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &gormNotificationRepository{db: db}
}

func (r *gormNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Create(n).Error, "notification")
}

func (r *gormNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	var items []models.Notification
	err := paginate(r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC"), 0, limit).
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "notification")
	}
	return items, nil
}

type gormAnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &gormAnnouncementRepository{db: db}
}

func (r *gormAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "announcement")
}

func (r *gormAnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	var items []models.Announcement
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, translate(err, "announcement")
	}
	return items, nil
}

func (r *gormAnnouncementRepository) ListActive(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	var items []models.Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "announcement")
	}
	return items, nil
}

func (r *gormAnnouncementRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return translate(res.Error, "announcement")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "announcement")
	}
	return nil
}
