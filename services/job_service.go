package services

import (
	"context"
	"strings"
	"time"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"
	"jobboard/services/notification"
	"jobboard/validator"
)

type JobService struct {
	jobs       repository.JobRepository
	apps       repository.ApplicationRepository
	engagement repository.EngagementRepository
	notifier   notification.Notifier
	logger     logger.Logger
	now        func() time.Time
}

type JobServiceOptions struct {
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Engagement   repository.EngagementRepository
	Notifier     notification.Notifier
	Logger       logger.Logger
	Now          func() time.Time
}

func NewJobService(opts JobServiceOptions) *JobService {
	s := &JobService{
		jobs:       opts.Jobs,
		apps:       opts.Applications,
		engagement: opts.Engagement,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Create chỉ dành cho employer
func (s *JobService) Create(ctx context.Context, actor models.Actor, req dto.CreateJobRequest) (*models.Job, error) {
	if !actor.IsEmployer() {
		return nil, apperr.Forbidden("only employers can post jobs")
	}
	if err := validator.ValidateSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	if err := validator.ValidateDeadline(req.Deadline, s.now()); err != nil {
		return nil, err
	}

	job := &models.Job{
		EmployerID:  actor.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    strings.TrimSpace(req.Location),
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Currency:    strings.ToUpper(req.Currency),
		Category:    req.Category,
		Level:       req.Level,
		Type:        req.Type,
		Skills:      validator.NormalizeSkills(req.Skills),
		Deadline:    req.Deadline,
		Openings:    req.Openings,
		Status:      models.JobStatusActive,
	}
	if job.Currency == "" {
		job.Currency = "USD"
	}
	if job.Openings == 0 {
		job.Openings = 1
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.logger.Info("✅ Employer %d đăng job %d", actor.UserID, job.ID)
	return job, nil
}

// owned tải job và kiểm tra quyền chủ sở hữu hoặc admin
func (s *JobService) owned(ctx context.Context, actor models.Actor, id uint) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(job.EmployerID) {
		return nil, apperr.Forbidden("you do not own this job")
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, actor models.Actor, id uint, req dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.SalaryMin != nil {
		job.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = *req.SalaryMax
	}
	if req.Currency != nil {
		job.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.Level != nil {
		job.Level = *req.Level
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Skills != nil {
		job.Skills = validator.NormalizeSkills(req.Skills)
	}
	if req.Openings != nil {
		job.Openings = *req.Openings
	}
	if req.Deadline != nil {
		if err := validator.ValidateDeadline(req.Deadline, s.now()); err != nil {
			return nil, err
		}
		job.Deadline = req.Deadline
	}
	if err := validator.ValidateSalaryRange(job.SalaryMin, job.SalaryMax); err != nil {
		return nil, err
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) SetStatus(ctx context.Context, actor models.Actor, id uint, status models.JobStatus) (*models.Job, error) {
	if !status.Valid() {
		return nil, apperr.InvalidStatus("invalid job status")
	}
	job, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	job.Status = status
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) SetTrending(ctx context.Context, actor models.Actor, id uint, trending bool) (*models.Job, error) {
	job, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	job.Trending = trending
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete không xóa kèm application; phía đọc tự bỏ qua các đơn mồ côi
func (s *JobService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("🗑️ Job %d deleted by %d", id, actor.UserID)
	return nil
}

// List là danh sách công khai; mặc định chỉ hiện job Active
func (s *JobService) List(ctx context.Context, q dto.JobListQuery) (*dto.JobListResult, error) {
	if q.Status == "" {
		q.Status = string(models.JobStatusActive)
	}
	return s.list(ctx, q)
}

// ListMine là danh sách job của chính employer, mọi trạng thái
func (s *JobService) ListMine(ctx context.Context, actor models.Actor, q dto.JobListQuery) (*dto.JobListResult, error) {
	if !actor.IsEmployer() {
		return nil, apperr.Forbidden("only employers own jobs")
	}
	q.EmployerID = actor.UserID
	return s.list(ctx, q)
}

func (s *JobService) list(ctx context.Context, q dto.JobListQuery) (*dto.JobListResult, error) {
	page, limit, offset := q.Normalize()
	filter := repository.JobFilter{
		Category:   q.Category,
		Level:      q.Level,
		Type:       q.Type,
		Location:   strings.TrimSpace(q.Location),
		Status:     models.JobStatus(q.Status),
		EmployerID: q.EmployerID,
		Trending:   q.Trending,
		MinSalary:  q.MinSalary,
		Sort:       q.Sort,
		Offset:     offset,
		Limit:      limit,
	}

	keyword := strings.TrimSpace(q.Q)
	if keyword == "" {
		jobs, total, err := s.jobs.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &dto.JobListResult{Jobs: jobs, Total: total, Page: page, Limit: limit}, nil
	}

	// có từ khóa: lấy toàn bộ ứng viên theo filter rồi chấm điểm trong Go
	filter.Offset, filter.Limit = 0, 0
	candidates, _, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ranked := rankJobs(keyword, candidates)
	result := &dto.JobListResult{Total: int64(len(ranked)), Page: page, Limit: limit, Jobs: []models.Job{}}
	if offset < len(ranked) {
		end := offset + limit
		if end > len(ranked) {
			end = len(ranked)
		}
		result.Jobs = ranked[offset:end]
	}
	if len(ranked) == 0 {
		result.Suggestion = suggestQuery(keyword, candidates)
	}
	return result, nil
}

// Detail trả về job kèm số liệu; actor khác nil thì thêm trạng thái cá nhân hóa
func (s *JobService) Detail(ctx context.Context, id uint, actor *models.Actor) (*dto.JobDetailResponse, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &dto.JobDetailResponse{Job: *job}

	views, err := s.engagement.CountViews(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Stats.Views = views + job.ArchivedViews

	if res.Stats.UniqueViewers, err = s.engagement.CountUniqueViewers(ctx, id); err != nil {
		return nil, err
	}
	if res.Stats.Likes, res.Stats.Dislikes, err = s.engagement.CountReactions(ctx, id); err != nil {
		return nil, err
	}
	if res.Stats.Applicants, err = s.apps.CountByJob(ctx, id); err != nil {
		return nil, err
	}

	if actor != nil {
		viewer := &dto.JobViewerState{}
		if actor.IsJobseeker() {
			if viewer.IsSaved, err = s.engagement.IsSaved(ctx, actor.UserID, id); err != nil {
				return nil, err
			}
			if viewer.HasApplied, err = s.apps.Exists(ctx, id, actor.UserID); err != nil {
				return nil, err
			}
		}
		reaction, err := s.engagement.GetReaction(ctx, id, actor.UserID)
		if err != nil {
			return nil, err
		}
		if reaction != nil {
			viewer.IsLiked = reaction.Kind == models.ReactionLike
			viewer.IsDisliked = reaction.Kind == models.ReactionDislike
		}
		res.Viewer = viewer
	}
	return res, nil
}

// CloseExpired đóng các job đã quá hạn và báo cho chủ job
func (s *JobService) CloseExpired(ctx context.Context) (int, error) {
	expired, err := s.jobs.ListExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(expired))
	for i, j := range expired {
		ids[i] = j.ID
	}
	if err := s.jobs.SetStatus(ctx, ids, models.JobStatusClosed); err != nil {
		return 0, err
	}

	for _, j := range expired {
		s.notifier.Notify(ctx, notification.Message{
			RecipientID: j.EmployerID,
			Type:        models.NotificationJobClosed,
			Text:        notification.NewMessageBuilder(models.NotificationJobClosed).Job(j.Title).Build(),
			JobID:       notification.Ref(j.ID),
		})
	}
	s.logger.Info("✅ Đã đóng %d job quá hạn", len(expired))
	return len(expired), nil
}
