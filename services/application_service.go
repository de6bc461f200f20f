package services

import (
	"context"
	"fmt"
	"strings"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"
	"jobboard/services/notification"
	"jobboard/validator"
)

type ApplicationService struct {
	apps     repository.ApplicationRepository
	jobs     repository.JobRepository
	users    repository.UserRepository
	notifier notification.Notifier
	logger   logger.Logger
	// strict bật bảng chuyển trạng thái models.ApplicationTransitions
	strict bool
}

type ApplicationServiceOptions struct {
	Applications      repository.ApplicationRepository
	Jobs              repository.JobRepository
	Users             repository.UserRepository
	Notifier          notification.Notifier
	Logger            logger.Logger
	StrictTransitions bool
}

func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	return &ApplicationService{
		apps:     opts.Applications,
		jobs:     opts.Jobs,
		users:    opts.Users,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		strict:   opts.StrictTransitions,
	}
}

// ApplyInput là dữ liệu của một lần ứng tuyển
type ApplyInput struct {
	JobID         uint
	CoverLetter   string
	HowDidYouHear string
	Resume        models.ResumeRef
}

// Apply tạo đơn ứng tuyển Pending. Unique index (job, applicant) đảm bảo chỉ có một đơn
// kể cả khi hai request đến cùng lúc.
func (s *ApplicationService) Apply(ctx context.Context, actor models.Actor, in ApplyInput) (*models.Application, error) {
	if !actor.IsJobseeker() {
		return nil, apperr.Forbidden("only jobseekers can apply")
	}
	coverLetter := strings.TrimSpace(in.CoverLetter)
	if coverLetter == "" {
		return nil, apperr.InvalidInput("cover letter is required")
	}
	if !in.Resume.Present() {
		return nil, apperr.InvalidInput("resume file is required")
	}

	applicant, job, err := s.eligible(ctx, actor, in.JobID)
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:         job.ID,
		ApplicantID:   applicant.ID,
		CoverLetter:   coverLetter,
		HowDidYouHear: strings.TrimSpace(in.HowDidYouHear),
		Resume:        in.Resume,
		Status:        models.ApplicationPending,
	}
	created, err := s.apps.CreateIfAbsent(ctx, app)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.DuplicateApplication()
	}

	s.notifier.Notify(ctx, notification.Message{
		RecipientID: job.EmployerID,
		Type:        models.NotificationApplicationReceived,
		Text: notification.NewMessageBuilder(models.NotificationApplicationReceived).
			Name(applicant.Name).Job(job.Title).Build(),
		JobID:         notification.Ref(job.ID),
		ApplicationID: notification.Ref(app.ID),
	})

	s.logger.Info("✅ User %d ứng tuyển job %d (application %d)", applicant.ID, job.ID, app.ID)
	return app, nil
}

// CheckEligible chạy trước khi lưu file CV để request chắc chắn bị từ chối không để lại file rác.
// Apply vẫn tự kiểm tra lại vì hai request có thể đến cùng lúc.
func (s *ApplicationService) CheckEligible(ctx context.Context, actor models.Actor, jobID uint) error {
	if !actor.IsJobseeker() {
		return apperr.Forbidden("only jobseekers can apply")
	}
	if _, _, err := s.eligible(ctx, actor, jobID); err != nil {
		return err
	}
	applied, err := s.apps.Exists(ctx, jobID, actor.UserID)
	if err != nil {
		return err
	}
	if applied {
		return apperr.DuplicateApplication()
	}
	return nil
}

func (s *ApplicationService) eligible(ctx context.Context, actor models.Actor, jobID uint) (*models.User, *models.Job, error) {
	applicant, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	if applicant.Role != models.RoleJobseeker {
		return nil, nil, apperr.Forbidden("only jobseekers can apply")
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return applicant, job, nil
}

// SetStatus ghi đè trạng thái. Chỉ chủ job hoặc admin được đổi.
func (s *ApplicationService) SetStatus(ctx context.Context, actor models.Actor, id uint, raw string) (*models.Application, error) {
	status, err := validator.ParseApplicationStatus(raw)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if app.Job == nil || app.Job.EmployerID != actor.UserID {
			return nil, apperr.Forbidden("you do not own the job of this application")
		}
	}
	if s.strict && !models.CanTransition(app.Status, status) {
		return nil, apperr.InvalidStatus(fmt.Sprintf("cannot move application from %s to %s", app.Status, status))
	}

	if err := s.apps.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, err
	}
	app.Status = status

	jobTitle := "a deleted job"
	if app.Job != nil {
		jobTitle = app.Job.Title
	}
	s.notifier.Notify(ctx, notification.Message{
		RecipientID: app.ApplicantID,
		Type:        models.NotificationApplicationStatus,
		Text: notification.NewMessageBuilder(models.NotificationApplicationStatus).
			Job(jobTitle).Status(string(status)).Build(),
		JobID:         notification.Ref(app.JobID),
		ApplicationID: notification.Ref(app.ID),
	})
	return app, nil
}

// Get: admin xem mọi đơn, ứng viên xem đơn của mình, employer xem đơn của job mình
func (s *ApplicationService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Application, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.IsAdmin():
	case app.ApplicantID == actor.UserID:
	case app.Job != nil && app.Job.EmployerID == actor.UserID:
	default:
		return nil, apperr.Forbidden("you cannot view this application")
	}
	return app, nil
}

// ListForJob yêu cầu chủ job hoặc admin
func (s *ApplicationService) ListForJob(ctx context.Context, actor models.Actor, jobID uint) ([]dto.ApplicationSummary, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(job.EmployerID) {
		return nil, apperr.Forbidden("you do not own this job")
	}

	apps, err := s.apps.ListByJobIDs(ctx, []uint{jobID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationSummary, 0, len(apps))
	for i := range apps {
		out = append(out, dto.NewApplicationSummary(&apps[i]))
	}
	return out, nil
}

// ListForEmployer lấy id các job của employer rồi gom đơn theo từng job.
// Job chưa có đơn nào vẫn xuất hiện với danh sách rỗng.
func (s *ApplicationService) ListForEmployer(ctx context.Context, employerID uint) ([]dto.JobApplications, error) {
	jobIDs, err := s.jobs.IDsByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if len(jobIDs) == 0 {
		return []dto.JobApplications{}, nil
	}

	jobs, err := s.jobs.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
	}

	apps, err := s.apps.ListByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}
	byJob := make(map[uint][]dto.ApplicationSummary, len(jobIDs))
	for i := range apps {
		byJob[apps[i].JobID] = append(byJob[apps[i].JobID], dto.NewApplicationSummary(&apps[i]))
	}

	out := make([]dto.JobApplications, 0, len(jobIDs))
	for _, id := range jobIDs {
		title, ok := titles[id]
		if !ok {
			continue
		}
		applicants := byJob[id]
		if applicants == nil {
			applicants = []dto.ApplicationSummary{}
		}
		out = append(out, dto.JobApplications{JobID: id, JobTitle: title, Applicants: applicants})
	}
	return out, nil
}

// ListApplied trả về các job ứng viên đã ứng tuyển, bỏ qua đơn có job đã bị xóa
func (s *ApplicationService) ListApplied(ctx context.Context, actor models.Actor) ([]dto.AppliedJob, error) {
	if !actor.IsJobseeker() {
		return nil, apperr.Forbidden("only jobseekers have applications")
	}
	apps, err := s.apps.ListByApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppliedJob, 0, len(apps))
	for _, a := range apps {
		if a.Job == nil {
			continue
		}
		out = append(out, dto.AppliedJob{
			ApplicationID: a.ID,
			Status:        a.Status,
			AppliedAt:     a.CreatedAt,
			Job:           *a.Job,
		})
	}
	return out, nil
}
