package services

import (
	"context"
	"fmt"
	"time"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
)

type InsightService struct {
	users      repository.UserRepository
	jobs       repository.JobRepository
	apps       repository.ApplicationRepository
	engagement repository.EngagementRepository
	loc        *time.Location
	now        func() time.Time
}

type InsightServiceOptions struct {
	Users        repository.UserRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Engagement   repository.EngagementRepository
	Location     *time.Location
	Now          func() time.Time
}

func NewInsightService(opts InsightServiceOptions) *InsightService {
	s := &InsightService{
		users:      opts.Users,
		jobs:       opts.Jobs,
		apps:       opts.Applications,
		engagement: opts.Engagement,
		loc:        opts.Location,
		now:        opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

var defaultPeriods = map[string]int{
	dto.BucketDay:   30,
	dto.BucketWeek:  12,
	dto.BucketMonth: 12,
}

// bucketStart trả về thời điểm bắt đầu bucket chứa t (tuần bắt đầu từ thứ Hai)
func bucketStart(t time.Time, bucket string) time.Time {
	y, m, d := t.Date()
	switch bucket {
	case dto.BucketMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case dto.BucketWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

func bucketLabel(start time.Time, bucket string) string {
	switch bucket {
	case dto.BucketMonth:
		return start.Format("2006-01")
	case dto.BucketWeek:
		y, w := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	default:
		return start.Format("2006-01-02")
	}
}

func stepBucket(t time.Time, bucket string, n int) time.Time {
	switch bucket {
	case dto.BucketMonth:
		return t.AddDate(0, n, 0)
	case dto.BucketWeek:
		return t.AddDate(0, 0, 7*n)
	default:
		return t.AddDate(0, 0, n)
	}
}

// bucketize đếm số mốc thời gian theo từng bucket, gồm cả bucket rỗng, cũ nhất trước
func bucketize(times []time.Time, bucket string, periods int, now time.Time, loc *time.Location) []dto.BucketCount {
	last := bucketStart(now.In(loc), bucket)
	first := stepBucket(last, bucket, -(periods - 1))

	out := make([]dto.BucketCount, periods)
	index := make(map[string]int, periods)
	for i := 0; i < periods; i++ {
		label := bucketLabel(stepBucket(first, bucket, i), bucket)
		out[i] = dto.BucketCount{Bucket: label}
		index[label] = i
	}

	for _, t := range times {
		label := bucketLabel(bucketStart(t.In(loc), bucket), bucket)
		if i, ok := index[label]; ok {
			out[i].Count++
		}
	}
	return out
}

func (s *InsightService) window(q dto.InsightQuery) (string, int, time.Time) {
	bucket := q.Bucket
	if bucket == "" {
		bucket = dto.BucketDay
	}
	periods := q.Periods
	if periods <= 0 {
		periods = defaultPeriods[bucket]
	}
	last := bucketStart(s.now().In(s.loc), bucket)
	return bucket, periods, stepBucket(last, bucket, -(periods - 1))
}

// Employer thống kê cho dashboard của nhà tuyển dụng
func (s *InsightService) Employer(ctx context.Context, actor models.Actor, q dto.InsightQuery) (*dto.EmployerDashboard, error) {
	if !actor.IsEmployer() {
		return nil, apperr.Forbidden("only employers have an employer dashboard")
	}

	bucket, periods, since := s.window(q)
	res := &dto.EmployerDashboard{}
	var err error

	if res.JobsByStatus, err = s.jobs.CountByStatus(ctx, actor.UserID); err != nil {
		return nil, err
	}
	if res.ApplicationsByStatus, err = s.apps.CountByStatus(ctx, actor.UserID); err != nil {
		return nil, err
	}
	times, err := s.apps.CreatedTimes(ctx, actor.UserID, since)
	if err != nil {
		return nil, err
	}
	res.Applications = bucketize(times, bucket, periods, s.now(), s.loc)

	if res.TotalViews, err = s.engagement.CountViewsForEmployer(ctx, actor.UserID); err != nil {
		return nil, err
	}
	if res.TotalLikes, err = s.engagement.CountLikesForEmployer(ctx, actor.UserID); err != nil {
		return nil, err
	}
	return res, nil
}

// Platform thống kê toàn hệ thống cho admin
func (s *InsightService) Platform(ctx context.Context, actor models.Actor, q dto.InsightQuery) (*dto.PlatformDashboard, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can view platform insights")
	}

	bucket, periods, since := s.window(q)
	res := &dto.PlatformDashboard{UsersByRole: map[string]int64{}}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	for role, n := range byRole {
		res.UsersByRole[role.String()] = n
	}

	if res.JobsByStatus, err = s.jobs.CountByStatus(ctx, 0); err != nil {
		return nil, err
	}
	if res.ApplicationsByStatus, err = s.apps.CountByStatus(ctx, 0); err != nil {
		return nil, err
	}
	times, err := s.apps.CreatedTimes(ctx, 0, since)
	if err != nil {
		return nil, err
	}
	res.Applications = bucketize(times, bucket, periods, s.now(), s.loc)
	return res, nil
}
