package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormEngagementRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &gormEngagementRepository{db: db}
}

func (r *gormEngagementRepository) Transaction(ctx context.Context, fn func(EngagementRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormEngagementRepository{db: tx, inTx: true})
	})
}

// ----- views -----

func (r *gormEngagementRepository) InsertView(ctx context.Context, v *models.JobView) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}, {Name: "viewed_on"}, {Name: "viewer_hash"}},
			DoNothing: true,
		}).
		Create(v)
	if res.Error != nil {
		return false, translate(res.Error, "view")
	}
	return res.RowsAffected > 0, nil
}

func (r *gormEngagementRepository) ListViews(ctx context.Context, jobID uint) ([]models.JobView, error) {
	var views []models.JobView
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("id").Find(&views).Error
	if err != nil {
		return nil, translate(err, "view")
	}
	return views, nil
}

func (r *gormEngagementRepository) TouchView(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.JobView{}).Where("id = ?", id).Update("viewed_at", at).Error
	return translate(err, "view")
}

func (r *gormEngagementRepository) CountViews(ctx context.Context, jobID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.JobView{}).Where("job_id = ?", jobID).Count(&n).Error
	return n, translate(err, "view")
}

func (r *gormEngagementRepository) CountUniqueViewers(ctx context.Context, jobID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.JobView{}).
		Where("job_id = ?", jobID).
		Distinct("viewer_hash").
		Count(&n).Error
	return n, translate(err, "view")
}

func (r *gormEngagementRepository) CountViewsForEmployer(ctx context.Context, employerID uint) (int64, error) {
	var live int64
	err := r.db.WithContext(ctx).Model(&models.JobView{}).
		Where("job_id IN (?)", r.db.Model(&models.Job{}).Select("id").Where("employer_id = ?", employerID)).
		Count(&live).Error
	if err != nil {
		return 0, translate(err, "view")
	}

	var archived int64
	err = r.db.WithContext(ctx).Model(&models.Job{}).
		Where("employer_id = ?", employerID).
		Select("COALESCE(SUM(archived_views), 0)").
		Scan(&archived).Error
	if err != nil {
		return 0, translate(err, "view")
	}
	return live + archived, nil
}

func (r *gormEngagementRepository) ArchiveViewsBefore(ctx context.Context, day string) (int64, error) {
	var archived int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			JobID uint
			Total int64
		}
		err := tx.Model(&models.JobView{}).
			Select("job_id, COUNT(*) AS total").
			Where("viewed_on < ?", day).
			Group("job_id").
			Scan(&rows).Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			err := tx.Model(&models.Job{}).
				Where("id = ?", row.JobID).
				Update("archived_views", gorm.Expr("archived_views + ?", row.Total)).Error
			if err != nil {
				return err
			}
			archived += row.Total
		}

		return tx.Where("viewed_on < ?", day).Delete(&models.JobView{}).Error
	})
	if err != nil {
		return 0, translate(err, "view")
	}
	return archived, nil
}

// ----- reactions -----

func (r *gormEngagementRepository) GetReaction(ctx context.Context, jobID, userID uint) (*models.JobReaction, error) {
	tx := r.db.WithContext(ctx)
	if r.inTx {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var reaction models.JobReaction
	err := tx.Where("job_id = ? AND user_id = ?", jobID, userID).First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "reaction")
	}
	return &reaction, nil
}

func (r *gormEngagementRepository) SetReaction(ctx context.Context, jobID, userID uint, kind models.ReactionKind) error {
	reaction := models.JobReaction{JobID: jobID, UserID: userID, Kind: kind}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
		}).
		Create(&reaction).Error
	return translate(err, "reaction")
}

func (r *gormEngagementRepository) DeleteReaction(ctx context.Context, jobID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Delete(&models.JobReaction{}).Error
	return translate(err, "reaction")
}

func (r *gormEngagementRepository) CountReactions(ctx context.Context, jobID uint) (int64, int64, error) {
	var rows []struct {
		Kind  models.ReactionKind
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.JobReaction{}).
		Select("kind, COUNT(*) AS total").
		Where("job_id = ?", jobID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, translate(err, "reaction")
	}

	var likes, dislikes int64
	for _, row := range rows {
		switch row.Kind {
		case models.ReactionLike:
			likes = row.Total
		case models.ReactionDislike:
			dislikes = row.Total
		}
	}
	return likes, dislikes, nil
}

func (r *gormEngagementRepository) CountLikesForEmployer(ctx context.Context, employerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.JobReaction{}).
		Where("kind = ?", models.ReactionLike).
		Where("job_id IN (?)", r.db.Model(&models.Job{}).Select("id").Where("employer_id = ?", employerID)).
		Count(&n).Error
	return n, translate(err, "reaction")
}

// ----- saved jobs -----

func (r *gormEngagementRepository) IsSaved(ctx context.Context, userID, jobID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "saved job")
	}
	return n > 0, nil
}

func (r *gormEngagementRepository) Save(ctx context.Context, userID, jobID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SavedJob{UserID: userID, JobID: jobID}).Error
	return translate(err, "saved job")
}

func (r *gormEngagementRepository) Unsave(ctx context.Context, userID, jobID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{}).Error
	return translate(err, "saved job")
}

func (r *gormEngagementRepository) ListSavedJobIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, translate(err, "saved job")
	}
	return ids, nil
}
