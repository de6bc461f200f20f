package dto

import "jobboard/models"

const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

type InsightQuery struct {
	Bucket string `form:"bucket" binding:"omitempty,oneof=day week month"`
	// số bucket gần nhất cần trả về
	Periods int `form:"periods" binding:"omitempty,min=1,max=366"`
}

type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

type EmployerDashboard struct {
	JobsByStatus         map[models.JobStatus]int64         `json:"jobsByStatus"`
	ApplicationsByStatus map[models.ApplicationStatus]int64 `json:"applicationsByStatus"`
	Applications         []BucketCount                      `json:"applications"`
	TotalViews           int64                              `json:"totalViews"`
	TotalLikes           int64                              `json:"totalLikes"`
}

type PlatformDashboard struct {
	UsersByRole          map[string]int64                   `json:"usersByRole"`
	JobsByStatus         map[models.JobStatus]int64         `json:"jobsByStatus"`
	ApplicationsByStatus map[models.ApplicationStatus]int64 `json:"applicationsByStatus"`
	Applications         []BucketCount                      `json:"applications"`
}
