package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"

	"github.com/redis/go-redis/v9"
)

const (
	activeAnnouncementsKey = "announcements:active"
	announcementCacheTTL   = 5 * time.Minute
	defaultFeedLimit       = 100
)

// Broadcaster đẩy sự kiện tới các client đang kết nối thuộc target
type Broadcaster interface {
	BroadcastTo(target models.AnnouncementTarget, kind string, data interface{}) error
}

type FeedService struct {
	notifications repository.NotificationRepository
	announcements repository.AnnouncementRepository
	rdb           *redis.Client
	broadcaster   Broadcaster
	logger        logger.Logger
	now           func() time.Time
}

type FeedServiceOptions struct {
	Notifications repository.NotificationRepository
	Announcements repository.AnnouncementRepository
	// Redis có thể nil, khi đó announcement luôn được đọc từ DB
	Redis       *redis.Client
	Broadcaster Broadcaster
	Logger      logger.Logger
	Now         func() time.Time
}

func NewFeedService(opts FeedServiceOptions) *FeedService {
	s := &FeedService{
		notifications: opts.Notifications,
		announcements: opts.Announcements,
		rdb:           opts.Redis,
		broadcaster:   opts.Broadcaster,
		logger:        opts.Logger,
		now:           opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Feed là hợp của notification gửi riêng cho user và các announcement đang hoạt động
// dành cho role của user (hoặc all), sắp xếp mới nhất trước.
func (s *FeedService) Feed(ctx context.Context, actor models.Actor, limit int) ([]dto.FeedItem, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	notes, err := s.notifications.ListByRecipient(ctx, actor.UserID, limit)
	if err != nil {
		return nil, err
	}
	active, err := s.activeAnnouncements(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]dto.FeedItem, 0, len(notes)+len(active))
	for _, n := range notes {
		items = append(items, dto.FeedItem{
			Kind:      dto.FeedKindNotification,
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			JobID:     n.JobID,
			AppID:     n.ApplicationID,
			RevenueID: n.RevenueID,
			CreatedAt: n.CreatedAt,
		})
	}
	for _, a := range active {
		// cache có thể còn giữ announcement vừa hết hạn
		if !a.ActiveAt(now) || !a.Target.Matches(actor.Role) {
			continue
		}
		items = append(items, dto.FeedItem{
			Kind:      dto.FeedKindAnnouncement,
			ID:        a.ID,
			Title:     a.Title,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *FeedService) activeAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	if s.rdb != nil {
		var cached []models.Announcement
		found, err := GetFromRedis(ctx, s.rdb, activeAnnouncementsKey, &cached)
		if err != nil {
			s.logger.Warn("⚠️ Không đọc được cache announcement: %v", err)
		} else if found {
			return cached, nil
		}
	}

	active, err := s.announcements.ListActive(ctx, s.now())
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := SetToRedis(ctx, s.rdb, activeAnnouncementsKey, active, announcementCacheTTL); err != nil {
			s.logger.Warn("⚠️ Không ghi được cache announcement: %v", err)
		}
	}
	return active, nil
}

func (s *FeedService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.rdb, activeAnnouncementsKey); err != nil {
		s.logger.Warn("⚠️ Không xóa được cache announcement: %v", err)
	}
}

// CreateAnnouncement dành cho admin
func (s *FeedService) CreateAnnouncement(ctx context.Context, actor models.Actor, req dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can publish announcements")
	}
	target := models.AnnouncementTarget(req.Target)
	if !target.Valid() {
		return nil, apperr.InvalidInput("invalid announcement target")
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return nil, apperr.InvalidInput("expiresAt must be in the future")
	}

	a := &models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Message:   req.Message,
		Target:    target,
		IsActive:  true,
		CreatedBy: actor.UserID,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	if s.broadcaster != nil {
		if err := s.broadcaster.BroadcastTo(a.Target, "announcement", a); err != nil {
			s.logger.Error("❌ Lỗi broadcast announcement %d: %v", a.ID, err)
		}
	}
	return a, nil
}

func (s *FeedService) ListAnnouncements(ctx context.Context, actor models.Actor) ([]models.Announcement, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can list announcements")
	}
	return s.announcements.List(ctx)
}

func (s *FeedService) DeactivateAnnouncement(ctx context.Context, actor models.Actor, id uint) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can deactivate announcements")
	}
	if err := s.announcements.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
