package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"
	"jobboard/services/notification"
)

var nopLogger logger.Logger = logger.Nop{}

// memDB là kho dữ liệu trong bộ nhớ, dùng chung cho các fake repository
type memDB struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	nextID uint
	now    func() time.Time

	users         map[uint]*models.User
	jobs          map[uint]*models.Job
	apps          map[uint]*models.Application
	views         []models.JobView
	reactions     map[[2]uint]models.ReactionKind
	saves         []models.SavedJob
	notifications []models.Notification
	announcements []models.Announcement
}

func newMemDB(now func() time.Time) *memDB {
	return &memDB{
		now:       now,
		users:     map[uint]*models.User{},
		jobs:      map[uint]*models.Job{},
		apps:      map[uint]*models.Application{},
		reactions: map[[2]uint]models.ReactionKind{},
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

type repos struct {
	db            *memDB
	users         *memUserRepo
	jobs          *memJobRepo
	apps          *memAppRepo
	engagement    *memEngagementRepo
	notifications *memNotificationRepo
	announcements *memAnnouncementRepo
}

func newRepos(now func() time.Time) *repos {
	db := newMemDB(now)
	return &repos{
		db:            db,
		users:         &memUserRepo{db: db},
		jobs:          &memJobRepo{db: db},
		apps:          &memAppRepo{db: db},
		engagement:    &memEngagementRepo{db: db},
		notifications: &memNotificationRepo{db: db},
		announcements: &memAnnouncementRepo{db: db},
	}
}

func (r *repos) addUser(name string, role models.Role) *models.User {
	u := &models.User{
		Name:       name,
		Email:      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Role:       role,
		AuthMethod: models.AuthMethodLocal,
	}
	if err := r.users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func (r *repos) addJob(employerID uint, title string) *models.Job {
	j := &models.Job{
		EmployerID: employerID,
		Title:      title,
		Category:   "Engineering",
		Level:      "Mid",
		Type:       "Full-time",
		Currency:   "USD",
		Openings:   1,
		Status:     models.JobStatusActive,
	}
	if err := r.jobs.Create(context.Background(), j); err != nil {
		panic(err)
	}
	return j
}

// ---- users

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return apperr.Conflict("user already exists")
		}
	}
	u.ID = r.db.id()
	u.CreatedAt = r.db.now()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r *memUserRepo) List(_ context.Context, f repository.UserFilter) ([]models.User, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.User
	for _, u := range r.db.users {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.Verified != nil && u.IsVerified != *f.Verified {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return window(out, f.Offset, f.Limit), total, nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	delete(r.db.users, id)
	for key := range r.db.reactions {
		if key[1] == id {
			delete(r.db.reactions, key)
		}
	}
	kept := r.db.saves[:0]
	for _, s := range r.db.saves {
		if s.UserID != id {
			kept = append(kept, s)
		}
	}
	r.db.saves = kept
	return nil
}

func (r *memUserRepo) CountByRole(_ context.Context) (map[models.Role]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[models.Role]int64{}
	for _, u := range r.db.users {
		out[u.Role]++
	}
	return out, nil
}

// ---- jobs

type memJobRepo struct{ db *memDB }

func (r *memJobRepo) Create(_ context.Context, j *models.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j.ID = r.db.id()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = r.db.now()
	}
	cp := *j
	r.db.jobs[j.ID] = &cp
	return nil
}

// loadJob phải được gọi khi đang giữ khóa
func (r *memJobRepo) loadJob(id uint) (*models.Job, bool) {
	j, ok := r.db.jobs[id]
	if !ok {
		return nil, false
	}
	cp := *j
	if u, ok := r.db.users[j.EmployerID]; ok {
		employer := *u
		cp.Employer = &employer
	}
	return &cp, true
}

func (r *memJobRepo) FindByID(_ context.Context, id uint) (*models.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j, ok := r.loadJob(id)
	if !ok {
		return nil, apperr.NotFound("job not found")
	}
	return j, nil
}

func (r *memJobRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Job{}
	for _, id := range ids {
		if j, ok := r.loadJob(id); ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *memJobRepo) Update(_ context.Context, j *models.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.jobs[j.ID]; !ok {
		return apperr.NotFound("job not found")
	}
	cp := *j
	cp.Employer = nil
	r.db.jobs[j.ID] = &cp
	return nil
}

func (r *memJobRepo) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.jobs[id]; !ok {
		return apperr.NotFound("job not found")
	}
	delete(r.db.jobs, id)
	return nil
}

func (r *memJobRepo) List(_ context.Context, f repository.JobFilter) ([]models.Job, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Job
	for id := range r.db.jobs {
		j, _ := r.loadJob(id)
		switch {
		case f.Status != "" && j.Status != f.Status:
		case f.EmployerID != 0 && j.EmployerID != f.EmployerID:
		case f.Category != "" && j.Category != f.Category:
		case f.Level != "" && j.Level != f.Level:
		case f.Type != "" && j.Type != f.Type:
		case f.Trending != nil && j.Trending != *f.Trending:
		case f.MinSalary > 0 && j.SalaryMax < f.MinSalary:
		default:
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].ID > out[k].ID
		}
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	total := int64(len(out))
	return window(out, f.Offset, f.Limit), total, nil
}

func (r *memJobRepo) IDsByEmployer(_ context.Context, employerID uint) ([]uint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []uint
	for id, j := range r.db.jobs {
		if j.EmployerID == employerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] < ids[k] })
	return ids, nil
}

func (r *memJobRepo) ListExpired(_ context.Context, now time.Time) ([]models.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Job
	for _, j := range r.db.jobs {
		if j.Status == models.JobStatusActive && j.Expired(now) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *memJobRepo) SetStatus(_ context.Context, ids []uint, status models.JobStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, id := range ids {
		if j, ok := r.db.jobs[id]; ok {
			j.Status = status
		}
	}
	return nil
}

func (r *memJobRepo) CountByStatus(_ context.Context, employerID uint) (map[models.JobStatus]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[models.JobStatus]int64{}
	for _, j := range r.db.jobs {
		if employerID == 0 || j.EmployerID == employerID {
			out[j.Status]++
		}
	}
	return out, nil
}

// ---- applications

type memAppRepo struct{ db *memDB }

func (r *memAppRepo) CreateIfAbsent(_ context.Context, a *models.Application) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return false, nil
		}
	}
	a.ID = r.db.id()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.db.now()
	}
	cp := *a
	r.db.apps[a.ID] = &cp
	return true, nil
}

// hydrate phải được gọi khi đang giữ khóa
func (r *memAppRepo) hydrate(a *models.Application) models.Application {
	cp := *a
	cp.Job, cp.Applicant = nil, nil
	if j, ok := r.db.jobs[a.JobID]; ok {
		job := *j
		cp.Job = &job
	}
	if u, ok := r.db.users[a.ApplicantID]; ok {
		user := *u
		cp.Applicant = &user
	}
	return cp
}

func (r *memAppRepo) FindByID(_ context.Context, id uint) (*models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return nil, apperr.NotFound("application not found")
	}
	out := r.hydrate(a)
	return &out, nil
}

func (r *memAppRepo) UpdateStatus(_ context.Context, id uint, status models.ApplicationStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return apperr.NotFound("application not found")
	}
	a.Status = status
	return nil
}

func (r *memAppRepo) sorted(keep func(*models.Application) bool) []models.Application {
	out := []models.Application{}
	for _, a := range r.db.apps {
		if keep(a) {
			out = append(out, r.hydrate(a))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

func (r *memAppRepo) ListByJobIDs(_ context.Context, jobIDs []uint) ([]models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	set := map[uint]bool{}
	for _, id := range jobIDs {
		set[id] = true
	}
	return r.sorted(func(a *models.Application) bool { return set[a.JobID] }), nil
}

func (r *memAppRepo) ListByApplicant(_ context.Context, applicantID uint) ([]models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.sorted(func(a *models.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *memAppRepo) Exists(_ context.Context, jobID, applicantID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppRepo) CountByJob(_ context.Context, jobID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, a := range r.db.apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r *memAppRepo) ownedBy(a *models.Application, employerID uint) bool {
	if employerID == 0 {
		return true
	}
	j, ok := r.db.jobs[a.JobID]
	return ok && j.EmployerID == employerID
}

func (r *memAppRepo) CountByStatus(_ context.Context, employerID uint) (map[models.ApplicationStatus]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[models.ApplicationStatus]int64{}
	for _, a := range r.db.apps {
		if r.ownedBy(a, employerID) {
			out[a.Status]++
		}
	}
	return out, nil
}

func (r *memAppRepo) CreatedTimes(_ context.Context, employerID uint, since time.Time) ([]time.Time, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []time.Time
	for _, a := range r.db.apps {
		if r.ownedBy(a, employerID) && !a.CreatedAt.Before(since) {
			out = append(out, a.CreatedAt)
		}
	}
	return out, nil
}

// ---- engagement

type memEngagementRepo struct {
	db *memDB
	// insertErr giả lập lỗi DB khi ghi lượt xem
	insertErr error
}

func (r *memEngagementRepo) InsertView(_ context.Context, v *models.JobView) (bool, error) {
	if r.insertErr != nil {
		return false, r.insertErr
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.views {
		if existing.JobID == v.JobID && existing.ViewedOn == v.ViewedOn && existing.ViewerHash == v.ViewerHash {
			return false, nil
		}
	}
	v.ID = r.db.id()
	r.db.views = append(r.db.views, *v)
	return true, nil
}

func (r *memEngagementRepo) ListViews(_ context.Context, jobID uint) ([]models.JobView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.JobView
	for _, v := range r.db.views {
		if v.JobID == jobID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memEngagementRepo) TouchView(_ context.Context, id uint, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.views {
		if r.db.views[i].ID == id {
			r.db.views[i].ViewedAt = at
			return nil
		}
	}
	return apperr.NotFound("view not found")
}

func (r *memEngagementRepo) CountViews(ctx context.Context, jobID uint) (int64, error) {
	views, _ := r.ListViews(ctx, jobID)
	return int64(len(views)), nil
}

func (r *memEngagementRepo) CountUniqueViewers(ctx context.Context, jobID uint) (int64, error) {
	views, _ := r.ListViews(ctx, jobID)
	seen := map[string]bool{}
	for _, v := range views {
		seen[v.ViewerHash] = true
	}
	return int64(len(seen)), nil
}

func (r *memEngagementRepo) CountViewsForEmployer(_ context.Context, employerID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, j := range r.db.jobs {
		if j.EmployerID == employerID {
			n += j.ArchivedViews
		}
	}
	for _, v := range r.db.views {
		if j, ok := r.db.jobs[v.JobID]; ok && j.EmployerID == employerID {
			n++
		}
	}
	return n, nil
}

func (r *memEngagementRepo) ArchiveViewsBefore(_ context.Context, day string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	kept := r.db.views[:0]
	for _, v := range r.db.views {
		if v.ViewedOn < day {
			if j, ok := r.db.jobs[v.JobID]; ok {
				j.ArchivedViews++
			}
			n++
			continue
		}
		kept = append(kept, v)
	}
	r.db.views = kept
	return n, nil
}

func (r *memEngagementRepo) GetReaction(_ context.Context, jobID, userID uint) (*models.JobReaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kind, ok := r.db.reactions[[2]uint{jobID, userID}]
	if !ok {
		return nil, nil
	}
	return &models.JobReaction{JobID: jobID, UserID: userID, Kind: kind}, nil
}

func (r *memEngagementRepo) SetReaction(_ context.Context, jobID, userID uint, kind models.ReactionKind) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.reactions[[2]uint{jobID, userID}] = kind
	return nil
}

func (r *memEngagementRepo) DeleteReaction(_ context.Context, jobID, userID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.reactions, [2]uint{jobID, userID})
	return nil
}

func (r *memEngagementRepo) CountReactions(_ context.Context, jobID uint) (int64, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var likes, dislikes int64
	for key, kind := range r.db.reactions {
		if key[0] != jobID {
			continue
		}
		if kind == models.ReactionLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

func (r *memEngagementRepo) CountLikesForEmployer(_ context.Context, employerID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for key, kind := range r.db.reactions {
		if j, ok := r.db.jobs[key[0]]; ok && j.EmployerID == employerID && kind == models.ReactionLike {
			n++
		}
	}
	return n, nil
}

func (r *memEngagementRepo) IsSaved(_ context.Context, userID, jobID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.saves {
		if s.UserID == userID && s.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEngagementRepo) Save(_ context.Context, userID, jobID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.saves = append(r.db.saves, models.SavedJob{ID: r.db.id(), UserID: userID, JobID: jobID, CreatedAt: r.db.now()})
	return nil
}

func (r *memEngagementRepo) Unsave(_ context.Context, userID, jobID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kept := r.db.saves[:0]
	for _, s := range r.db.saves {
		if s.UserID != userID || s.JobID != jobID {
			kept = append(kept, s)
		}
	}
	r.db.saves = kept
	return nil
}

func (r *memEngagementRepo) ListSavedJobIDs(_ context.Context, userID uint) ([]uint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ids := []uint{}
	for i := len(r.db.saves) - 1; i >= 0; i-- {
		if r.db.saves[i].UserID == userID {
			ids = append(ids, r.db.saves[i].JobID)
		}
	}
	return ids, nil
}

// Transaction tuần tự hóa các transaction, tương đương khóa dòng SELECT ... FOR UPDATE
func (r *memEngagementRepo) Transaction(_ context.Context, fn func(repository.EngagementRepository) error) error {
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()
	return fn(r)
}

// ---- notifications

type memNotificationRepo struct {
	db        *memDB
	createErr error
}

func (r *memNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n.ID = r.db.id()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.db.now()
	}
	r.db.notifications = append(r.db.notifications, *n)
	return nil
}

func (r *memNotificationRepo) ListByRecipient(_ context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Notification
	for _, n := range r.db.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return window(out, 0, limit), nil
}

func (r *memNotificationRepo) forUser(userID uint) []models.Notification {
	out, _ := r.ListByRecipient(context.Background(), userID, 0)
	return out
}

type memAnnouncementRepo struct {
	db    *memDB
	reads int
}

func (r *memAnnouncementRepo) Create(_ context.Context, a *models.Announcement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a.ID = r.db.id()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.db.now()
	}
	r.db.announcements = append(r.db.announcements, *a)
	return nil
}

func (r *memAnnouncementRepo) List(_ context.Context) ([]models.Announcement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := append([]models.Announcement(nil), r.db.announcements...)
	return out, nil
}

func (r *memAnnouncementRepo) ListActive(_ context.Context, now time.Time) ([]models.Announcement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.reads++
	out := []models.Announcement{}
	for i := range r.db.announcements {
		if r.db.announcements[i].ActiveAt(now) {
			out = append(out, r.db.announcements[i])
		}
	}
	return out, nil
}

func (r *memAnnouncementRepo) Deactivate(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.announcements {
		if r.db.announcements[i].ID == id {
			r.db.announcements[i].IsActive = false
			return nil
		}
	}
	return apperr.NotFound("announcement not found")
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---- notifier

// newNotifier dựng notification.Service thật trên repo trong bộ nhớ
func newNotifier(r *repos) *notification.Service {
	return notification.NewService(notification.ServiceOptions{
		Repo:   r.notifications,
		Logger: nopLogger,
	})
}

// fixedClock là đồng hồ có thể chỉnh trong test
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fixedClock { return &fixedClock{t: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
