package dto

import (
	"time"

	"jobboard/models"
)

type CreateJobRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"required"`
	Location    string     `json:"location" binding:"required,max=200"`
	SalaryMin   int64      `json:"salaryMin" binding:"min=0"`
	SalaryMax   int64      `json:"salaryMax" binding:"min=0"`
	Currency    string     `json:"currency" binding:"omitempty,len=3"`
	Category    string     `json:"category" binding:"required,jobcategory" enums:"Engineering,Design,Marketing,Sales,Finance,Human Resources,Operations,Customer Support,Education,Healthcare,Other"`
	Level       string     `json:"level" binding:"required,joblevel" enums:"Internship,Entry,Mid,Senior,Lead,Manager"`
	Type        string     `json:"type" binding:"required,jobtype" enums:"Full-time,Part-time,Contract,Temporary,Internship,Remote"`
	Skills      []string   `json:"skills" binding:"omitempty,dive,required,max=50"`
	Deadline    *time.Time `json:"deadline"`
	Openings    int        `json:"openings" binding:"omitempty,min=1"`
}

// UpdateJobRequest: field nil được giữ nguyên
type UpdateJobRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,min=1"`
	Location    *string    `json:"location" binding:"omitempty,min=1,max=200"`
	SalaryMin   *int64     `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax   *int64     `json:"salaryMax" binding:"omitempty,min=0"`
	Currency    *string    `json:"currency" binding:"omitempty,len=3"`
	Category    *string    `json:"category" binding:"omitempty,jobcategory" enums:"Engineering,Design,Marketing,Sales,Finance,Human Resources,Operations,Customer Support,Education,Healthcare,Other"`
	Level       *string    `json:"level" binding:"omitempty,joblevel" enums:"Internship,Entry,Mid,Senior,Lead,Manager"`
	Type        *string    `json:"type" binding:"omitempty,jobtype" enums:"Full-time,Part-time,Contract,Temporary,Internship,Remote"`
	Skills      []string   `json:"skills" binding:"omitempty,dive,required,max=50"`
	Deadline    *time.Time `json:"deadline"`
	Openings    *int       `json:"openings" binding:"omitempty,min=1"`
}

type JobStatusRequest struct {
	Status models.JobStatus `json:"status" binding:"required,jobstatus" enums:"Active,Inactive,Closed"`
}

type JobTrendingRequest struct {
	Trending *bool `json:"trending" binding:"required"`
}

type JobListQuery struct {
	Q          string `form:"q"`
	Category   string `form:"category" binding:"omitempty,jobcategory"`
	Level      string `form:"level" binding:"omitempty,joblevel"`
	Type       string `form:"type" binding:"omitempty,jobtype"`
	Status     string `form:"status" binding:"omitempty,jobstatus"`
	Location   string `form:"location"`
	EmployerID uint   `form:"employerId"`
	Trending   *bool  `form:"trending"`
	MinSalary  int64  `form:"minSalary" binding:"omitempty,min=0"`
	Sort       string `form:"sort" binding:"omitempty,oneof=newest deadline trending"`
	PageQuery
}

// JobListResult là kết quả tìm kiếm job kèm gợi ý khi không có kết quả
type JobListResult struct {
	Jobs       []models.Job `json:"jobs"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// JobStats là các số đếm tính tại thời điểm đọc
type JobStats struct {
	Views         int64 `json:"views"`
	UniqueViewers int64 `json:"uniqueViewers"`
	Likes         int64 `json:"likes"`
	Dislikes      int64 `json:"dislikes"`
	Applicants    int64 `json:"applicants"`
}

// JobViewerState là trạng thái cá nhân hóa cho người xem đã đăng nhập
type JobViewerState struct {
	IsSaved    bool `json:"isSaved"`
	IsLiked    bool `json:"isLiked"`
	IsDisliked bool `json:"isDisliked"`
	HasApplied bool `json:"hasApplied"`
}

type JobDetailResponse struct {
	models.Job
	Stats  JobStats        `json:"stats"`
	Viewer *JobViewerState `json:"viewer,omitempty"`
}
