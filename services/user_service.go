package services

import (
	"context"
	"strings"

	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"
	"jobboard/services/notification"
	"jobboard/validator"
)

type UserService struct {
	users    repository.UserRepository
	notifier notification.Notifier
	logger   logger.Logger
}

type UserServiceOptions struct {
	Users    repository.UserRepository
	Notifier notification.Notifier
	Logger   logger.Logger
}

func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{
		users:    opts.Users,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.users.FindByID(ctx, actor.UserID)
}

// UpdateProfile chỉ cập nhật phần hồ sơ đúng với role của user
func (s *UserService) UpdateProfile(ctx context.Context, actor models.Actor, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.Phone != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	switch user.Role {
	case models.RoleJobseeker:
		if req.Headline != nil {
			user.Jobseeker.Headline = strings.TrimSpace(*req.Headline)
		}
		if req.Skills != nil {
			user.Jobseeker.Skills = validator.NormalizeSkills(req.Skills)
		}
		if req.ExperienceYears != nil {
			user.Jobseeker.Experience = *req.ExperienceYears
		}
	case models.RoleEmployer:
		if req.Company != nil {
			user.Employer.Company = strings.TrimSpace(*req.Company)
		}
		if req.Website != nil {
			user.Employer.Website = strings.TrimSpace(*req.Website)
		}
		if req.About != nil {
			user.Employer.About = *req.About
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(ctx context.Context, actor models.Actor, url string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	user.Avatar = url
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List dành cho admin
func (s *UserService) List(ctx context.Context, q dto.UserListQuery) ([]models.User, int64, int, int, error) {
	page, limit, offset := q.Normalize()
	filter := repository.UserFilter{
		Verified: q.Verified,
		Name:     strings.TrimSpace(q.Name),
		Offset:   offset,
		Limit:    limit,
	}
	if q.Role != "" {
		role, err := models.ParseRole(q.Role)
		if err != nil {
			return nil, 0, 0, 0, apperr.InvalidInput(err.Error())
		}
		filter.Role = &role
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return users, total, page, limit, nil
}

// SetVerified bật/tắt xác minh và thông báo cho user
func (s *UserService) SetVerified(ctx context.Context, userID uint, verified bool) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified == verified {
		return user, nil
	}

	user.IsVerified = verified
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	kind := models.NotificationAccountUnverified
	if verified {
		kind = models.NotificationAccountVerified
	}
	s.notifier.Notify(ctx, notification.Message{
		RecipientID: user.ID,
		Type:        kind,
		Text:        notification.NewMessageBuilder(kind).Build(),
	})

	s.logger.Info("✅ User %d verified=%v", user.ID, verified)
	return user, nil
}

// Delete: tài khoản admin không bao giờ bị xóa, bất kể ai yêu cầu.
// Các tài khoản khác chỉ admin hoặc chính chủ được xóa.
func (s *UserService) Delete(ctx context.Context, actor models.Actor, userID uint) error {
	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleAdmin {
		return apperr.Forbidden("admin accounts cannot be deleted")
	}
	if !actor.CanManage(target.ID) {
		return apperr.Forbidden("you cannot delete this user")
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}
	s.logger.Info("🗑️ User %d deleted by %d", target.ID, actor.UserID)
	return nil
}
