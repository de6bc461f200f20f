package repository

import (
	"context"
	"time"

	"jobboard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &gormApplicationRepository{db: db}
}

// CreateIfAbsent dựa vào unique index (job_id, applicant_id): INSERT ... ON CONFLICT DO NOTHING,
// không có dòng nào được ghi nghĩa là đã ứng tuyển trước đó.
func (r *gormApplicationRepository) CreateIfAbsent(ctx context.Context, a *models.Application) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit("Job", "Applicant").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}, {Name: "applicant_id"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, translate(res.Error, "application")
	}
	return res.RowsAffected > 0, nil
}

// FindByID preload Job; Job là nil nếu job đã bị xóa
func (r *gormApplicationRepository) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	if err := r.db.WithContext(ctx).Preload("Job").Preload("Applicant").First(&a, id).Error; err != nil {
		return nil, translate(err, "application")
	}
	return &a, nil
}

func (r *gormApplicationRepository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "application")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "application")
	}
	return nil
}

func (r *gormApplicationRepository) ListByJobIDs(ctx context.Context, jobIDs []uint) ([]models.Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id IN ?", jobIDs).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, translate(err, "application")
	}
	return apps, nil
}

func (r *gormApplicationRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Employer").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, translate(err, "application")
	}
	return apps, nil
}

func (r *gormApplicationRepository) Exists(ctx context.Context, jobID, applicantID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "application")
	}
	return n > 0, nil
}

func (r *gormApplicationRepository) CountByJob(ctx context.Context, jobID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).Where("job_id = ?", jobID).Count(&n).Error
	return n, translate(err, "application")
}

func (r *gormApplicationRepository) scoped(ctx context.Context, employerID uint) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Application{})
	if employerID != 0 {
		tx = tx.Where("job_id IN (?)", r.db.Model(&models.Job{}).Select("id").Where("employer_id = ?", employerID))
	}
	return tx
}

func (r *gormApplicationRepository) CountByStatus(ctx context.Context, employerID uint) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Total  int64
	}
	err := r.scoped(ctx, employerID).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "application")
	}

	out := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *gormApplicationRepository) CreatedTimes(ctx context.Context, employerID uint, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.scoped(ctx, employerID).
		Where("created_at >= ?", since).
		Order("created_at").
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, translate(err, "application")
	}
	return times, nil
}
