package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleEmployer})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"employer"}`, string(b))

	var out struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"Admin"}`), &out))
	assert.Equal(t, RoleAdmin, out.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"root"}`), &out))
	_, err = json.Marshal(struct{ R Role }{Role(7)})
	assert.Error(t, err)
}

func TestActorCanManage(t *testing.T) {
	owner := Actor{UserID: 1, Role: RoleEmployer}
	other := Actor{UserID: 2, Role: RoleEmployer}
	admin := Actor{UserID: 3, Role: RoleAdmin}

	assert.True(t, owner.CanManage(1))
	assert.False(t, other.CanManage(1))
	assert.True(t, admin.CanManage(1))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(ApplicationPending, ApplicationRejected))
	assert.True(t, CanTransition(ApplicationAccepted, ApplicationAccepted))
	assert.True(t, CanTransition(ApplicationRejected, ApplicationReviewed))
	assert.False(t, CanTransition(ApplicationRejected, ApplicationAccepted))
	assert.False(t, CanTransition(ApplicationAccepted, ApplicationPending))
}

func TestClosedSets(t *testing.T) {
	assert.True(t, ApplicationReviewed.Valid())
	assert.False(t, ApplicationStatus("Hired").Valid())
	assert.True(t, JobStatusClosed.Valid())
	assert.False(t, JobStatus("Draft").Valid())
	assert.True(t, ValidJobCategory("Engineering"))
	assert.False(t, ValidJobLevel("Wizard"))
	assert.True(t, ValidJobType("Part-time"))
	assert.False(t, NotificationType("promo").Valid())
}

func TestAnnouncementTargeting(t *testing.T) {
	assert.True(t, TargetAll.Matches(RoleJobseeker))
	assert.True(t, TargetEmployer.Matches(RoleEmployer))
	assert.False(t, TargetEmployer.Matches(RoleJobseeker))

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	a := Announcement{IsActive: true, ExpiresAt: &past}
	assert.False(t, a.ActiveAt(now))
	a.ExpiresAt = nil
	assert.True(t, a.ActiveAt(now))
	a.IsActive = false
	assert.False(t, a.ActiveAt(now))
}

func TestJobExpired(t *testing.T) {
	now := time.Now()
	j := Job{}
	assert.False(t, j.Expired(now))
	d := now.Add(-time.Minute)
	j.Deadline = &d
	assert.True(t, j.Expired(now))
}
