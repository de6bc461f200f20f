package jobs

import (
	"context"
	"time"

	"jobboard/services/logger"

	"github.com/robfig/cron/v3"
)

const (
	closeExpiredSpec = "0 0 * * *"
	archiveViewsSpec = "30 0 * * *"
	jobTimeout       = 10 * time.Minute
)

// ExpiredJobCloser đóng các job đã quá deadline
type ExpiredJobCloser interface {
	CloseExpired(ctx context.Context) (int, error)
}

// ViewArchiver gộp các lượt xem cũ vào bộ đếm của job
type ViewArchiver interface {
	ArchiveViews(ctx context.Context, retentionDays int) (int64, error)
}

// Scheduler là phần của cron.Cron mà InitCronJobs cần
type Scheduler interface {
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
	Start()
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c Scheduler, closer ExpiredJobCloser, archiver ViewArchiver, retentionDays int, log logger.Logger) error {
	// 0h mỗi ngày: đóng job quá hạn
	if _, err := c.AddFunc(closeExpiredSpec, func() { closeExpired(closer, log) }); err != nil {
		return err
	}
	// 0h30 mỗi ngày: dọn bảng job_views
	if _, err := c.AddFunc(archiveViewsSpec, func() { archiveViews(archiver, retentionDays, log) }); err != nil {
		return err
	}

	c.Start()
	log.Info("✅ Cron jobs initialized successfully")
	return nil
}

func closeExpired(closer ExpiredJobCloser, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	log.Info("Đang đóng các job quá hạn lúc: %v", time.Now())
	if _, err := closer.CloseExpired(ctx); err != nil {
		log.Error("❌ Lỗi khi đóng job quá hạn: %v", err)
	}
}

func archiveViews(archiver ViewArchiver, retentionDays int, log logger.Logger) {
	if retentionDays <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := archiver.ArchiveViews(ctx, retentionDays)
	if err != nil {
		log.Error("❌ Lỗi khi lưu trữ lượt xem: %v", err)
		return
	}
	log.Info("✅ Đã lưu trữ %d lượt xem cũ hơn %d ngày", n, retentionDays)
}
