package services

import (
	"context"
	"testing"
	"time"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (*UserService, *repos) {
	r := newRepos(func() time.Time { return testNow })
	svc := NewUserService(UserServiceOptions{
		Users:    r.users,
		Notifier: newNotifier(r),
		Logger:   nopLogger,
	})
	return svc, r
}

func TestDeleteUserNeverRemovesAdmins(t *testing.T) {
	svc, r := newUserFixture()
	ctx := context.Background()
	admin := r.addUser("Root Admin", models.RoleAdmin)
	otherAdmin := r.addUser("Second Admin", models.RoleAdmin)
	seeker := r.addUser("Jane Seeker", models.RoleJobseeker)
	employer := r.addUser("Acme Hiring", models.RoleEmployer)

	for _, actor := range []models.Actor{admin.Actor(), otherAdmin.Actor(), seeker.Actor()} {
		err := svc.Delete(ctx, actor, otherAdmin.ID)
		assert.True(t, apperr.HasCode(err, apperr.ErrCodeForbidden))
	}
	_, err := r.users.FindByID(ctx, otherAdmin.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin.Actor(), seeker.ID))
	require.NoError(t, svc.Delete(ctx, admin.Actor(), employer.ID))

	_, err = r.users.FindByID(ctx, seeker.ID)
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeNotFound))
	_, err = r.users.FindByID(ctx, employer.ID)
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeNotFound))
}

func TestDeleteUserSelfAndStranger(t *testing.T) {
	svc, r := newUserFixture()
	ctx := context.Background()
	a := r.addUser("Jane Seeker", models.RoleJobseeker)
	b := r.addUser("John Seeker", models.RoleJobseeker)

	err := svc.Delete(ctx, a.Actor(), b.ID)
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeForbidden))

	require.NoError(t, svc.Delete(ctx, a.Actor(), a.ID))

	err = svc.Delete(ctx, b.Actor(), a.ID)
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeNotFound))
}

func TestDeleteUserCleansReactionsAndSaves(t *testing.T) {
	svc, r := newUserFixture()
	ctx := context.Background()
	admin := r.addUser("Root Admin", models.RoleAdmin)
	employer := r.addUser("Acme Hiring", models.RoleEmployer)
	seeker := r.addUser("Jane Seeker", models.RoleJobseeker)
	job := r.addJob(employer.ID, "Backend Engineer")

	require.NoError(t, r.engagement.SetReaction(ctx, job.ID, seeker.ID, models.ReactionLike))
	require.NoError(t, r.engagement.Save(ctx, seeker.ID, job.ID))

	require.NoError(t, svc.Delete(ctx, admin.Actor(), seeker.ID))

	likes, _, _ := r.engagement.CountReactions(ctx, job.ID)
	assert.Zero(t, likes)
	saved, _ := r.engagement.IsSaved(ctx, seeker.ID, job.ID)
	assert.False(t, saved)
}

func TestSetVerifiedNotifiesOnChange(t *testing.T) {
	svc, r := newUserFixture()
	ctx := context.Background()
	employer := r.addUser("Acme Hiring", models.RoleEmployer)

	user, err := svc.SetVerified(ctx, employer.ID, true)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// không đổi thì không gửi thêm thông báo
	_, err = svc.SetVerified(ctx, employer.ID, true)
	require.NoError(t, err)

	_, err = svc.SetVerified(ctx, employer.ID, false)
	require.NoError(t, err)

	notes := r.notifications.forUser(employer.ID)
	require.Len(t, notes, 2)
	types := []models.NotificationType{notes[0].Type, notes[1].Type}
	assert.ElementsMatch(t, []models.NotificationType{models.NotificationAccountVerified, models.NotificationAccountUnverified}, types)
}

func TestUpdateProfileOnlyTouchesOwnRole(t *testing.T) {
	svc, r := newUserFixture()
	ctx := context.Background()
	seeker := r.addUser("Jane Seeker", models.RoleJobseeker)
	employer := r.addUser("Acme Hiring", models.RoleEmployer)
	headline := "Go developer"
	company := "Acme"

	user, err := svc.UpdateProfile(ctx, seeker.Actor(), dto.UpdateProfileRequest{
		Headline: &headline,
		Company:  &company,
		Skills:   []string{" Go ", "go", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Go developer", user.Jobseeker.Headline)
	assert.Equal(t, []string{"Go", "SQL"}, []string(user.Jobseeker.Skills))
	assert.Empty(t, user.Employer.Company)

	user, err = svc.UpdateProfile(ctx, employer.Actor(), dto.UpdateProfileRequest{Company: &company, Headline: &headline})
	require.NoError(t, err)
	assert.Equal(t, "Acme", user.Employer.Company)
	assert.Empty(t, user.Jobseeker.Headline)
}

func TestListUsersFiltersByRole(t *testing.T) {
	svc, r := newUserFixture()
	ctx := context.Background()
	r.addUser("Jane Seeker", models.RoleJobseeker)
	r.addUser("John Seeker", models.RoleJobseeker)
	r.addUser("Acme Hiring", models.RoleEmployer)

	users, total, page, limit, err := svc.List(ctx, dto.UserListQuery{Role: "jobseeker"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, page)
	assert.Equal(t, dto.DefaultLimit, limit)

	_, _, _, _, err = svc.List(ctx, dto.UserListQuery{Role: "superuser"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidInput))
}
