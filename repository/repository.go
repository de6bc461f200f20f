// Package repository chứa tầng truy cập dữ liệu. Service chỉ phụ thuộc vào interface,
// bản cài đặt gorm nằm trong các file *_repository.go.
package repository

import (
	"context"
	"errors"
	"time"

	apperr "jobboard/errors"
	"jobboard/models"

	"gorm.io/gorm"
)

type UserFilter struct {
	Role     *models.Role
	Verified *bool
	Name     string
	Offset   int
	Limit    int
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, u *models.User) error
	// Delete xóa user cùng reaction và job đã lưu của user đó
	Delete(ctx context.Context, id uint) error
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}

const (
	SortNewest   = "newest"
	SortDeadline = "deadline"
	SortTrending = "trending"
)

type JobFilter struct {
	Category   string
	Level      string
	Type       string
	Location   string
	Status     models.JobStatus
	EmployerID uint
	Trending   *bool
	MinSalary  int64
	Sort       string
	Offset     int
	// Limit = 0 nghĩa là lấy tất cả
	Limit int
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	FindByID(ctx context.Context, id uint) (*models.Job, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f JobFilter) ([]models.Job, int64, error)
	IDsByEmployer(ctx context.Context, employerID uint) ([]uint, error)
	// ListExpired trả về các job còn Active nhưng đã quá hạn
	ListExpired(ctx context.Context, now time.Time) ([]models.Job, error)
	SetStatus(ctx context.Context, ids []uint, status models.JobStatus) error
	// CountByStatus đếm job theo trạng thái; employerID = 0 là toàn hệ thống
	CountByStatus(ctx context.Context, employerID uint) (map[models.JobStatus]int64, error)
}

type ApplicationRepository interface {
	// CreateIfAbsent trả về false nếu (job, applicant) đã tồn tại
	CreateIfAbsent(ctx context.Context, a *models.Application) (bool, error)
	FindByID(ctx context.Context, id uint) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	ListByJobIDs(ctx context.Context, jobIDs []uint) ([]models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]models.Application, error)
	Exists(ctx context.Context, jobID, applicantID uint) (bool, error)
	CountByJob(ctx context.Context, jobID uint) (int64, error)
	// employerID = 0 là toàn hệ thống
	CountByStatus(ctx context.Context, employerID uint) (map[models.ApplicationStatus]int64, error)
	CreatedTimes(ctx context.Context, employerID uint, since time.Time) ([]time.Time, error)
}

type EngagementRepository interface {
	// InsertView trả về false nếu viewer đã xem job trong ngày
	InsertView(ctx context.Context, v *models.JobView) (bool, error)
	ListViews(ctx context.Context, jobID uint) ([]models.JobView, error)
	TouchView(ctx context.Context, id uint, at time.Time) error
	CountViews(ctx context.Context, jobID uint) (int64, error)
	CountUniqueViewers(ctx context.Context, jobID uint) (int64, error)
	CountViewsForEmployer(ctx context.Context, employerID uint) (int64, error)
	// ArchiveViewsBefore gom các lượt xem trước ngày day vào jobs.archived_views rồi xóa
	ArchiveViewsBefore(ctx context.Context, day string) (int64, error)

	GetReaction(ctx context.Context, jobID, userID uint) (*models.JobReaction, error)
	SetReaction(ctx context.Context, jobID, userID uint, kind models.ReactionKind) error
	DeleteReaction(ctx context.Context, jobID, userID uint) error
	CountReactions(ctx context.Context, jobID uint) (likes, dislikes int64, err error)
	CountLikesForEmployer(ctx context.Context, employerID uint) (int64, error)

	IsSaved(ctx context.Context, userID, jobID uint) (bool, error)
	Save(ctx context.Context, userID, jobID uint) error
	Unsave(ctx context.Context, userID, jobID uint) error
	ListSavedJobIDs(ctx context.Context, userID uint) ([]uint, error)

	// Transaction chạy fn trong một transaction; GetReaction bên trong sẽ khóa dòng
	Transaction(ctx context.Context, fn func(EngagementRepository) error) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context) ([]models.Announcement, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Announcement, error)
	Deactivate(ctx context.Context, id uint) error
}

// translate đổi lỗi gorm sang AppError
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.NewAppError(apperr.ErrCodeConflict, what+" already exists", err)
	default:
		return apperr.Database("failed to access "+what, err)
	}
}

func paginate(db *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		db = db.Offset(offset)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	return db
}
