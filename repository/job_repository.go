package repository

import (
	"context"
	"time"

	"jobboard/models"

	"gorm.io/gorm"
)

type gormJobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &gormJobRepository{db: db}
}

func (r *gormJobRepository) Create(ctx context.Context, j *models.Job) error {
	return translate(r.db.WithContext(ctx).Create(j).Error, "job")
}

func (r *gormJobRepository) FindByID(ctx context.Context, id uint) (*models.Job, error) {
	var j models.Job
	if err := r.db.WithContext(ctx).Preload("Employer").First(&j, id).Error; err != nil {
		return nil, translate(err, "job")
	}
	return &j, nil
}

func (r *gormJobRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []models.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, translate(err, "job")
	}
	return jobs, nil
}

func (r *gormJobRepository) Update(ctx context.Context, j *models.Job) error {
	return translate(r.db.WithContext(ctx).Omit("Employer").Save(j).Error, "job")
}

func (r *gormJobRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return translate(res.Error, "job")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "job")
	}
	return nil
}

func (r *gormJobRepository) List(ctx context.Context, f JobFilter) ([]models.Job, int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Job{})

	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.Level != "" {
		tx = tx.Where("level = ?", f.Level)
	}
	if f.Type != "" {
		tx = tx.Where("type = ?", f.Type)
	}
	if f.Location != "" {
		tx = tx.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.EmployerID != 0 {
		tx = tx.Where("employer_id = ?", f.EmployerID)
	}
	if f.Trending != nil {
		tx = tx.Where("trending = ?", *f.Trending)
	}
	if f.MinSalary > 0 {
		tx = tx.Where("salary_max >= ?", f.MinSalary)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "job")
	}

	switch f.Sort {
	case SortDeadline:
		tx = tx.Order("deadline ASC NULLS LAST").Order("id DESC")
	case SortTrending:
		tx = tx.Order("trending DESC").Order("created_at DESC")
	default:
		tx = tx.Order("created_at DESC")
	}

	var jobs []models.Job
	if err := paginate(tx, f.Offset, f.Limit).Find(&jobs).Error; err != nil {
		return nil, 0, translate(err, "job")
	}
	return jobs, total, nil
}

func (r *gormJobRepository) IDsByEmployer(ctx context.Context, employerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("employer_id = ?", employerID).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, translate(err, "job")
	}
	return ids, nil
}

func (r *gormJobRepository) ListExpired(ctx context.Context, now time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.JobStatusActive, now).
		Find(&jobs).Error
	if err != nil {
		return nil, translate(err, "job")
	}
	return jobs, nil
}

func (r *gormJobRepository) SetStatus(ctx context.Context, ids []uint, status models.JobStatus) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id IN ?", ids).
		Update("status", status).Error
	return translate(err, "job")
}

func (r *gormJobRepository) CountByStatus(ctx context.Context, employerID uint) (map[models.JobStatus]int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Job{})
	if employerID != 0 {
		tx = tx.Where("employer_id = ?", employerID)
	}

	var rows []struct {
		Status models.JobStatus
		Total  int64
	}
	if err := tx.Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, translate(err, "job")
	}

	out := make(map[models.JobStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
