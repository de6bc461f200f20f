package dto

import (
	"time"

	"jobboard/models"
)

type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}

// UniqueView là một viewer sau khi khử trùng lặp, giữ lần xem mới nhất
type UniqueView struct {
	Viewer   string    `json:"viewer"`
	LastSeen time.Time `json:"lastSeen"`
}

type UniqueViewsResponse struct {
	JobID   uint         `json:"jobId"`
	Total   int          `json:"total"`
	Viewers []UniqueView `json:"viewers"`
}

// FeedItem là một phần tử trong feed: notification hoặc announcement
type FeedItem struct {
	Kind      string                  `json:"kind"`
	ID        uint                    `json:"id"`
	Type      models.NotificationType `json:"type,omitempty"`
	Title     string                  `json:"title,omitempty"`
	Message   string                  `json:"message"`
	JobID     *uint                   `json:"jobId,omitempty"`
	AppID     *uint                   `json:"applicationId,omitempty"`
	RevenueID *uint                   `json:"revenueId,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

const (
	FeedKindNotification = "notification"
	FeedKindAnnouncement = "announcement"
)

type CreateAnnouncementRequest struct {
	Title     string     `json:"title" binding:"required,max=200"`
	Message   string     `json:"message" binding:"required"`
	Target    string     `json:"target" binding:"required,oneof=all jobseeker employer admin"`
	ExpiresAt *time.Time `json:"expiresAt"`
}
