package dto

import (
	"time"

	"jobboard/models"
)

// ApplyRequest là phần form của multipart request ứng tuyển; file CV nằm ở field "resume"
type ApplyRequest struct {
	CoverLetter   string `form:"coverLetter" json:"coverLetter" binding:"required,max=10000"`
	HowDidYouHear string `form:"howDidYouHear" json:"howDidYouHear" binding:"omitempty,max=500"`
}

type ApplyResponse struct {
	ApplicationID uint `json:"applicationId"`
}

// ApplicationStatusRequest: giá trị phân biệt hoa thường, sai giá trị trả INVALID_STATUS
type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"Pending,Reviewed,Accepted,Rejected"`
}

type ApplicationStatusResponse struct {
	ApplicationID uint                     `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
}

// ApplicantSummary là thông tin rút gọn của người ứng tuyển
type ApplicantSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ApplicationSummary struct {
	ID            uint                     `json:"id"`
	JobID         uint                     `json:"jobId"`
	Applicant     *ApplicantSummary        `json:"applicant,omitempty"`
	CoverLetter   string                   `json:"coverLetter"`
	HowDidYouHear string                   `json:"howDidYouHear,omitempty"`
	Resume        models.ResumeRef         `json:"resume"`
	Status        models.ApplicationStatus `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
}

func NewApplicationSummary(a *models.Application) ApplicationSummary {
	s := ApplicationSummary{
		ID:            a.ID,
		JobID:         a.JobID,
		CoverLetter:   a.CoverLetter,
		HowDidYouHear: a.HowDidYouHear,
		Resume:        a.Resume,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
	if a.Applicant != nil {
		s.Applicant = &ApplicantSummary{ID: a.Applicant.ID, Name: a.Applicant.Name, Email: a.Applicant.Email}
	}
	return s
}

// JobApplications gom các đơn ứng tuyển theo job
type JobApplications struct {
	JobID      uint                 `json:"jobId"`
	JobTitle   string               `json:"jobTitle"`
	Applicants []ApplicationSummary `json:"applicants"`
}

// AppliedJob là một dòng trong danh sách job đã ứng tuyển của ứng viên
type AppliedJob struct {
	ApplicationID uint                     `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
	AppliedAt     time.Time                `json:"appliedAt"`
	Job           models.Job               `json:"job"`
}
