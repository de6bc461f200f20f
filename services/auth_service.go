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

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// GoogleTokenValidator xác thực ID token của Google, mặc định là idtoken.Validate
type GoogleTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

type AuthService struct {
	users          repository.UserRepository
	tokens         *TokenService
	googleClientID string
	validateGoogle GoogleTokenValidator
	logger         logger.Logger
	now            func() time.Time
}

type AuthServiceOptions struct {
	Users          repository.UserRepository
	Tokens         *TokenService
	GoogleClientID string
	ValidateGoogle GoogleTokenValidator
	Logger         logger.Logger
	Now            func() time.Time
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	s := &AuthService{
		users:          opts.Users,
		tokens:         opts.Tokens,
		googleClientID: opts.GoogleClientID,
		validateGoogle: opts.ValidateGoogle,
		logger:         opts.Logger,
		now:            opts.Now,
	}
	if s.validateGoogle == nil {
		s.validateGoogle = idtoken.Validate
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Register tạo tài khoản local; admin không tự đăng ký được
func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*dto.UserLoginResponse, error) {
	role, err := models.ParseRole(in.Role)
	if err != nil || role == models.RoleAdmin {
		return nil, apperr.InvalidInput("role must be jobseeker or employer")
	}
	if len(in.Password) < 8 {
		return nil, apperr.InvalidInput("password must have at least 8 characters")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !apperr.HasCode(err, apperr.ErrCodeNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.NewAppError(apperr.ErrCodeInvalidInput, "cannot hash password", err)
	}

	now := s.now()
	user := &models.User{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Password:    string(hashed),
		Role:        role,
		AuthMethod:  models.AuthMethodLocal,
		LastLoginAt: &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("✅ Đăng ký user %d (%s)", user.ID, role)
	return s.session(user)
}

// Login kiểm tra mật khẩu và cập nhật LastLoginAt
func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (*dto.UserLoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if apperr.HasCode(err, apperr.ErrCodeNotFound) {
		return nil, apperr.NewAppError(apperr.ErrCodeInvalidPassword, "invalid email or password", nil)
	}
	if err != nil {
		return nil, err
	}

	if user.AuthMethod != models.AuthMethodLocal || user.Password == "" {
		return nil, apperr.NewAppError(apperr.ErrCodeInvalidPassword, "this account signs in with "+user.AuthMethod, nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperr.NewAppError(apperr.ErrCodeInvalidPassword, "invalid email or password", nil)
	}

	s.touchLogin(ctx, user)
	return s.session(user)
}

// GoogleLogin xác thực ID token; lần đầu đăng nhập sẽ tạo tài khoản jobseeker
func (s *AuthService) GoogleLogin(ctx context.Context, in dto.GoogleLoginInput) (*dto.UserLoginResponse, error) {
	payload, err := s.validateGoogle(ctx, in.IDToken, s.googleClientID)
	if err != nil {
		return nil, apperr.NewAppError(apperr.ErrCodeUnauthenticated, "invalid Google ID token", err)
	}

	gu := googleUserFromClaims(payload.Claims)
	if gu.Email == "" {
		return nil, apperr.Unauthenticated("Google token has no email")
	}

	user, err := s.users.FindByEmail(ctx, gu.Email)
	switch {
	case err == nil:
		s.touchLogin(ctx, user)
	case apperr.HasCode(err, apperr.ErrCodeNotFound):
		now := s.now()
		user = &models.User{
			Name:            gu.Name,
			Email:           gu.Email,
			Role:            models.RoleJobseeker,
			AuthMethod:      models.AuthMethodGoogle,
			IsEmailVerified: gu.VerifiedEmail,
			Avatar:          gu.Picture,
			LastLoginAt:     &now,
		}
		if user.Name == "" {
			user.Name = strings.Split(gu.Email, "@")[0]
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("✅ Tạo user %d từ Google login", user.ID)
	default:
		return nil, err
	}

	return s.session(user)
}

func (s *AuthService) touchLogin(ctx context.Context, user *models.User) {
	now := s.now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("❌ Lỗi cập nhật lastLoginAt cho user %d: %v", user.ID, err)
	}
}

func (s *AuthService) session(user *models.User) (*dto.UserLoginResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperr.NewAppError(apperr.ErrCodeInvalidToken, "cannot issue token", err)
	}
	return &dto.UserLoginResponse{AccessToken: token, User: dto.NewUserResponse(user)}, nil
}

func googleUserFromClaims(claims map[string]interface{}) dto.GoogleUser {
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	verified, _ := claims["email_verified"].(bool)
	return dto.GoogleUser{
		Name:          str("name"),
		Email:         strings.ToLower(str("email")),
		VerifiedEmail: verified,
		Picture:       str("picture"),
	}
}
