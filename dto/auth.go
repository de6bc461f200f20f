package dto

import (
	"time"

	"jobboard/models"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	// chỉ jobseeker hoặc employer được tự đăng ký
	Role string `json:"role" binding:"required,oneof=jobseeker employer"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

type UserLoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// GoogleUser là thông tin lấy từ ID token của Google
type GoogleUser struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verifiedEmail"`
	Picture       string `json:"picture"`
}

// UserResponse định nghĩa response cho user
type UserResponse struct {
	ID              uint                     `json:"id"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email"`
	Role            models.Role              `json:"role"`
	IsVerified      bool                     `json:"isVerified"`
	IsEmailVerified bool                     `json:"isEmailVerified"`
	AuthMethod      string                   `json:"authMethod"`
	Avatar          string                   `json:"avatar,omitempty"`
	Phone           string                   `json:"phone,omitempty"`
	LastLoginAt     *time.Time               `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	Jobseeker       *models.JobseekerProfile `json:"jobseeker,omitempty"`
	Employer        *models.EmployerProfile  `json:"employer,omitempty"`
}

// NewUserResponse chỉ trả về phần hồ sơ đúng với role
func NewUserResponse(u *models.User) UserResponse {
	res := UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		IsVerified:      u.IsVerified,
		IsEmailVerified: u.IsEmailVerified,
		AuthMethod:      u.AuthMethod,
		Avatar:          u.Avatar,
		Phone:           u.Phone,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
	switch u.Role {
	case models.RoleJobseeker:
		profile := u.Jobseeker
		res.Jobseeker = &profile
	case models.RoleEmployer:
		profile := u.Employer
		res.Employer = &profile
	}
	return res
}
