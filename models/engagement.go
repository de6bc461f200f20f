package models

import "time"

// JobView là một lượt xem đã khử trùng lặp theo (job, ngày, viewer)
type JobView struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	JobID      uint      `gorm:"not null;uniqueIndex:idx_job_view_day" json:"jobId"`
	ViewedOn   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_job_view_day" json:"viewedOn"`
	ViewerHash string    `gorm:"type:char(64);not null;uniqueIndex:idx_job_view_day" json:"viewerHash"`
	Viewer     string    `json:"viewer"`
	ViewedAt   time.Time `json:"viewedAt"`
}

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// JobReaction: mỗi user chỉ có tối đa một reaction trên một job
type JobReaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
	JobID     uint         `gorm:"not null;uniqueIndex:idx_reaction_job_user" json:"jobId"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reaction_job_user" json:"userId"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null" json:"kind"`
}

type SavedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_job" json:"userId"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_saved_user_job" json:"jobId"`
}
