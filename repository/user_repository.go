package repository

import (
	"context"
	"strings"

	"jobboard/models"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "user")
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *gormUserRepository) List(ctx context.Context, f UserFilter) ([]models.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{})
	if f.Role != nil {
		tx = tx.Where("role = ?", *f.Role)
	}
	if f.Verified != nil {
		tx = tx.Where("is_verified = ?", *f.Verified)
	}
	if f.Name != "" {
		tx = tx.Where("name ILIKE ?", "%"+f.Name+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "user")
	}

	var users []models.User
	if err := paginate(tx.Order("created_at DESC"), f.Offset, f.Limit).Find(&users).Error; err != nil {
		return nil, 0, translate(err, "user")
	}
	return users, total, nil
}

func (r *gormUserRepository) Update(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error, "user")
}

func (r *gormUserRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.JobReaction{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&models.SavedJob{}).Error
	})
	return translate(err, "user")
}

func (r *gormUserRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	var rows []struct {
		Role  models.Role
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "user")
	}

	out := make(map[models.Role]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Total
	}
	return out, nil
}
