package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newAuthFixture(validate GoogleTokenValidator) (*AuthService, *repos, *TokenService) {
	r := newRepos(func() time.Time { return testNow })
	tokens := NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(AuthServiceOptions{
		Users:          r.users,
		Tokens:         tokens,
		GoogleClientID: "client-id",
		ValidateGoogle: validate,
		Logger:         nopLogger,
		Now:            func() time.Time { return testNow },
	})
	return svc, r, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture(nil)
	ctx := context.Background()

	session, err := svc.Register(ctx, dto.RegisterInput{
		Name: "Jane", Email: " Jane@Example.com ", Password: "s3cret-pass", Role: "employer",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", session.User.Email)
	assert.Equal(t, models.RoleEmployer, session.User.Role)

	actor, err := tokens.Parse("Bearer " + session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, actor.UserID)
	assert.Equal(t, models.RoleEmployer, actor.Role)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "jane@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "jane@example.com", Password: "wrong-pass"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidPassword))

	_, err = svc.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidPassword))
}

func TestRegisterRejects(t *testing.T) {
	svc, _, _ := newAuthFixture(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@example.com", Password: "12345678", Role: "admin"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidInput))

	_, err = svc.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@example.com", Password: "short", Role: "jobseeker"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidInput))

	_, err = svc.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@example.com", Password: "12345678", Role: "jobseeker"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterInput{Name: "B", Email: "A@example.com", Password: "12345678", Role: "jobseeker"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeConflict))
}

func TestGoogleLoginCreatesJobseekerOnce(t *testing.T) {
	calls := 0
	svc, r, _ := newAuthFixture(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		calls++
		assert.Equal(t, "client-id", audience)
		if token != "good" {
			return nil, errors.New("bad token")
		}
		return &idtoken.Payload{Claims: map[string]interface{}{
			"email":          "G.User@gmail.com",
			"email_verified": true,
			"name":           "G User",
		}}, nil
	})
	ctx := context.Background()

	first, err := svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "g.user@gmail.com", first.User.Email)
	assert.Equal(t, models.RoleJobseeker, first.User.Role)

	second, err := svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	_, total, _ := r.users.List(ctx, repository.UserFilter{})
	assert.Equal(t, int64(1), total)

	_, err = svc.GoogleLogin(ctx, dto.GoogleLoginInput{IDToken: "forged"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeUnauthenticated))
	assert.Equal(t, 3, calls)

	// tài khoản Google không đăng nhập bằng mật khẩu được
	_, err = svc.Login(ctx, dto.LoginInput{Email: "g.user@gmail.com", Password: "anything"})
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidPassword))
}

func TestTokenParse(t *testing.T) {
	tokens := NewTokenService("secret-a", time.Hour)
	user := &models.User{ID: 7, Role: models.RoleAdmin, IsVerified: true}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	actor, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, models.Actor{UserID: 7, Role: models.RoleAdmin, IsVerified: true}, actor)

	actor, err = tokens.Parse("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), actor.UserID)

	_, err = NewTokenService("secret-b", time.Hour).Parse(signed)
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeUnauthenticated))

	expired, err := NewTokenService("secret-a", -time.Minute).Issue(user)
	require.NoError(t, err)
	_, err = tokens.Parse(expired)
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeUnauthenticated))

	_, err = tokens.Parse("")
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeUnauthenticated))
}
