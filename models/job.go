package models

import (
	"time"

	"github.com/lib/pq"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "Active"
	JobStatusInactive JobStatus = "Inactive"
	JobStatusClosed   JobStatus = "Closed"
)

var JobStatuses = []JobStatus{JobStatusActive, JobStatusInactive, JobStatusClosed}

func (s JobStatus) Valid() bool {
	for _, v := range JobStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Các tập giá trị đóng cho category, level, type của job
var (
	JobCategories = []string{
		"Engineering", "Design", "Marketing", "Sales", "Finance",
		"Human Resources", "Operations", "Customer Support", "Education", "Healthcare", "Other",
	}
	JobLevels = []string{"Internship", "Entry", "Mid", "Senior", "Lead", "Manager"}
	JobTypes  = []string{"Full-time", "Part-time", "Contract", "Temporary", "Internship", "Remote"}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidJobCategory(v string) bool { return contains(JobCategories, v) }
func ValidJobLevel(v string) bool    { return contains(JobLevels, v) }
func ValidJobType(v string) bool     { return contains(JobTypes, v) }

type Job struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	EmployerID  uint           `gorm:"not null;index" json:"employerId"`
	Employer    *User          `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"index" json:"location"`
	SalaryMin   int64          `json:"salaryMin"`
	SalaryMax   int64          `json:"salaryMax"`
	Currency    string         `gorm:"default:USD" json:"currency"`
	Category    string         `gorm:"index" json:"category"`
	Level       string         `json:"level"`
	Type        string         `json:"type"`
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Openings    int            `gorm:"default:1" json:"openings"`
	Status      JobStatus      `gorm:"default:Active;index" json:"status"`
	Trending    bool           `gorm:"default:false" json:"trending"`
	// Số lượt xem đã được gom lại sau khi dọn bảng job_views
	ArchivedViews int64 `gorm:"default:0" json:"-"`
}

// Expired cho biết hạn nộp đã qua tại thời điểm now
func (j *Job) Expired(now time.Time) bool {
	return j.Deadline != nil && j.Deadline.Before(now)
}
