package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewSeenTTL = 48 * time.Hour

// ViewTracker giữ tập "đã xem hôm nay" trên Redis để chặn các lượt xem lặp lại trước khi chạm DB.
// Key tự hết hạn sau 48h nên không cần dọn theo ngày.
type ViewTracker struct {
	rdb *redis.Client
}

func NewViewTracker(rdb *redis.Client) *ViewTracker {
	return &ViewTracker{rdb: rdb}
}

func viewSeenKey(jobID uint, day string) string {
	return fmt.Sprintf("views:seen:%d:%s", jobID, day)
}

// MarkSeen thêm viewer vào tập của ngày; trả về true nếu đây là lần đầu trong ngày.
func (t *ViewTracker) MarkSeen(ctx context.Context, jobID uint, day, viewerHash string) (bool, error) {
	key := viewSeenKey(jobID, day)

	pipe := t.rdb.TxPipeline()
	added := pipe.SAdd(ctx, key, viewerHash)
	pipe.Expire(ctx, key, viewSeenTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return added.Val() == 1, nil
}

// Forget gỡ viewer khỏi tập, dùng khi ghi DB thất bại để lần sau còn thử lại.
func (t *ViewTracker) Forget(ctx context.Context, jobID uint, day, viewerHash string) error {
	return t.rdb.SRem(ctx, viewSeenKey(jobID, day), viewerHash).Err()
}
