package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"
)

const dayLayout = "2006-01-02"

type EngagementService struct {
	repo    repository.EngagementRepository
	jobs    repository.JobRepository
	users   repository.UserRepository
	tracker *ViewTracker
	logger  logger.Logger
	loc     *time.Location
	now     func() time.Time
}

type EngagementServiceOptions struct {
	Engagement repository.EngagementRepository
	Jobs       repository.JobRepository
	Users      repository.UserRepository
	// Tracker có thể nil, khi đó mọi lượt xem đều đi thẳng xuống DB
	Tracker  *ViewTracker
	Logger   logger.Logger
	Location *time.Location
	Now      func() time.Time
}

func NewEngagementService(opts EngagementServiceOptions) *EngagementService {
	s := &EngagementService{
		repo:    opts.Engagement,
		jobs:    opts.Jobs,
		users:   opts.Users,
		tracker: opts.Tracker,
		logger:  opts.Logger,
		loc:     opts.Location,
		now:     opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// HashViewer băm định danh người xem (IP) trước khi lưu
func HashViewer(viewer string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(viewer)))
	return hex.EncodeToString(sum[:])
}

// RecordView ghi nhận tối đa một lượt xem cho mỗi viewer mỗi ngày (theo lịch, không phải 24h trượt)
func (s *EngagementService) RecordView(ctx context.Context, jobID uint, viewer string) error {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return err
	}

	viewer = strings.TrimSpace(viewer)
	if viewer == "" {
		viewer = "unknown"
	}
	now := s.now()
	day := now.In(s.loc).Format(dayLayout)
	hash := HashViewer(viewer)

	if s.tracker != nil {
		first, err := s.tracker.MarkSeen(ctx, jobID, day, hash)
		if err != nil {
			s.logger.Warn("⚠️ Redis view tracker lỗi, ghi thẳng xuống DB: %v", err)
		} else if !first {
			return nil
		}
	}

	_, err := s.repo.InsertView(ctx, &models.JobView{
		JobID:      jobID,
		ViewedOn:   day,
		ViewerHash: hash,
		Viewer:     viewer,
		ViewedAt:   now,
	})
	if err != nil && s.tracker != nil {
		if ferr := s.tracker.Forget(ctx, jobID, day, hash); ferr != nil {
			s.logger.Error("❌ Lỗi gỡ viewer khỏi tracker: %v", ferr)
		}
	}
	return err
}

// UniqueViews khử trùng lặp theo viewer, giữ lần xem mới nhất. Lượt xem không có thời gian
// được gán thời điểm hiện tại và lưu lại.
func (s *EngagementService) UniqueViews(ctx context.Context, actor models.Actor, jobID uint) (*dto.UniqueViewsResponse, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(job.EmployerID) {
		return nil, apperr.Forbidden("you do not own this job")
	}

	views, err := s.repo.ListViews(ctx, jobID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	latest := make(map[string]dto.UniqueView, len(views))
	for _, v := range views {
		if v.ViewedAt.IsZero() {
			v.ViewedAt = now
			if err := s.repo.TouchView(ctx, v.ID, now); err != nil {
				s.logger.Error("❌ Lỗi sửa thời gian lượt xem %d: %v", v.ID, err)
			}
		}
		key := v.ViewerHash
		if key == "" {
			key = HashViewer(v.Viewer)
		}
		if cur, ok := latest[key]; !ok || v.ViewedAt.After(cur.LastSeen) {
			latest[key] = dto.UniqueView{Viewer: v.Viewer, LastSeen: v.ViewedAt}
		}
	}

	viewers := make([]dto.UniqueView, 0, len(latest))
	for _, v := range latest {
		viewers = append(viewers, v)
	}
	sort.Slice(viewers, func(i, j int) bool {
		if viewers[i].LastSeen.Equal(viewers[j].LastSeen) {
			return viewers[i].Viewer < viewers[j].Viewer
		}
		return viewers[i].LastSeen.After(viewers[j].LastSeen)
	})

	return &dto.UniqueViewsResponse{JobID: jobID, Total: len(viewers), Viewers: viewers}, nil
}

// nextReaction: bấm lại đúng reaction đang có thì gỡ, còn lại thì thay bằng reaction mới.
// Một user vì vậy không bao giờ vừa like vừa dislike.
func nextReaction(current *models.JobReaction, pressed models.ReactionKind) (models.ReactionKind, bool) {
	if current != nil && current.Kind == pressed {
		return "", false
	}
	return pressed, true
}

func (s *EngagementService) ToggleLike(ctx context.Context, actor models.Actor, jobID uint) (dto.ReactionCounts, error) {
	return s.toggleReaction(ctx, actor, jobID, models.ReactionLike)
}

func (s *EngagementService) ToggleDislike(ctx context.Context, actor models.Actor, jobID uint) (dto.ReactionCounts, error) {
	return s.toggleReaction(ctx, actor, jobID, models.ReactionDislike)
}

func (s *EngagementService) toggleReaction(ctx context.Context, actor models.Actor, jobID uint, pressed models.ReactionKind) (dto.ReactionCounts, error) {
	if err := s.requireJobseeker(ctx, actor); err != nil {
		return dto.ReactionCounts{}, err
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return dto.ReactionCounts{}, err
	}

	var counts dto.ReactionCounts
	err := s.repo.Transaction(ctx, func(tx repository.EngagementRepository) error {
		current, err := tx.GetReaction(ctx, jobID, actor.UserID)
		if err != nil {
			return err
		}

		if kind, keep := nextReaction(current, pressed); keep {
			err = tx.SetReaction(ctx, jobID, actor.UserID, kind)
		} else {
			err = tx.DeleteReaction(ctx, jobID, actor.UserID)
		}
		if err != nil {
			return err
		}

		counts.Likes, counts.Dislikes, err = tx.CountReactions(ctx, jobID)
		return err
	})
	if err != nil {
		return dto.ReactionCounts{}, err
	}
	return counts, nil
}

// ToggleSave lưu hoặc bỏ lưu job; trả về trạng thái sau khi đổi
func (s *EngagementService) ToggleSave(ctx context.Context, actor models.Actor, jobID uint) (bool, error) {
	if err := s.requireJobseeker(ctx, actor); err != nil {
		return false, err
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return false, err
	}

	saved := false
	err := s.repo.Transaction(ctx, func(tx repository.EngagementRepository) error {
		isSaved, err := tx.IsSaved(ctx, actor.UserID, jobID)
		if err != nil {
			return err
		}
		if isSaved {
			return tx.Unsave(ctx, actor.UserID, jobID)
		}
		saved = true
		return tx.Save(ctx, actor.UserID, jobID)
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// SavedJobs trả về các job đã lưu, bỏ qua job đã bị xóa
func (s *EngagementService) SavedJobs(ctx context.Context, actor models.Actor) ([]models.Job, error) {
	if err := s.requireJobseeker(ctx, actor); err != nil {
		return nil, err
	}
	ids, err := s.repo.ListSavedJobIDs(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	out := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

// ArchiveViews gom các lượt xem cũ hơn retentionDays vào bộ đếm của job
func (s *EngagementService) ArchiveViews(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().In(s.loc).AddDate(0, 0, -retentionDays).Format(dayLayout)
	n, err := s.repo.ArchiveViewsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("✅ Đã lưu trữ %d lượt xem trước ngày %s", n, cutoff)
	return n, nil
}

func (s *EngagementService) requireJobseeker(ctx context.Context, actor models.Actor) error {
	if !actor.IsJobseeker() {
		return apperr.Forbidden("only jobseekers can do this")
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.ErrCodeNotFound) {
			return apperr.Forbidden("jobseeker account not found")
		}
		return err
	}
	if user.Role != models.RoleJobseeker {
		return apperr.Forbidden("only jobseekers can do this")
	}
	return nil
}
