package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationReviewed ApplicationStatus = "Reviewed"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ApplicationTransitions liệt kê các bước chuyển trạng thái hợp lệ khi bật chế độ strict.
// Ở chế độ mặc định mọi trạng thái đều chuyển được sang nhau.
var ApplicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationReviewed, ApplicationAccepted, ApplicationRejected},
	ApplicationReviewed: {ApplicationAccepted, ApplicationRejected, ApplicationPending},
	ApplicationAccepted: {ApplicationReviewed},
	ApplicationRejected: {ApplicationReviewed},
}

// CanTransition kiểm tra bước chuyển from -> to theo bảng strict
func CanTransition(from, to ApplicationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range ApplicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ResumeRef là tham chiếu tới file CV đã được upload
type ResumeRef struct {
	StoragePath  string `json:"storagePath"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}

func (r ResumeRef) Present() bool {
	return r.StoragePath != ""
}

type Application struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
	JobID         uint              `gorm:"not null;uniqueIndex:idx_application_job_applicant" json:"jobId"`
	Job           *Job              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID   uint              `gorm:"not null;uniqueIndex:idx_application_job_applicant;index" json:"applicantId"`
	Applicant     *User             `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	HowDidYouHear string            `json:"howDidYouHear"`
	CoverLetter   string            `gorm:"type:text;not null" json:"coverLetter"`
	Resume        ResumeRef         `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
	Status        ApplicationStatus `gorm:"default:Pending;index" json:"status"`
}
