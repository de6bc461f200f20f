package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	AuthMethodLocal  = "local"
	AuthMethodGoogle = "google"
)

// JobseekerProfile là phần hồ sơ riêng của ứng viên
type JobseekerProfile struct {
	Headline   string         `json:"headline,omitempty"`
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills,omitempty"`
	Experience int            `gorm:"default:0" json:"experienceYears,omitempty"`
}

// EmployerProfile là phần hồ sơ riêng của nhà tuyển dụng
type EmployerProfile struct {
	Company string `json:"company,omitempty"`
	Website string `json:"website,omitempty"`
	About   string `gorm:"type:text" json:"about,omitempty"`
}

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `json:"-"`
	Role            Role       `gorm:"default:0;index" json:"role"`
	IsVerified      bool       `gorm:"default:false" json:"isVerified"`
	IsEmailVerified bool       `gorm:"default:false" json:"isEmailVerified"`
	AuthMethod      string     `gorm:"default:local" json:"authMethod"`
	Avatar          string     `json:"avatar"`
	Phone           string     `json:"phone"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`

	Jobseeker JobseekerProfile `gorm:"embedded;embeddedPrefix:seeker_" json:"jobseeker"`
	Employer  EmployerProfile  `gorm:"embedded;embeddedPrefix:employer_" json:"employer"`
}

// Actor dựng danh tính xác thực từ bản ghi user
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role, IsVerified: u.IsVerified}
}
