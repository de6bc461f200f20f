package models

import "time"

type NotificationType string

const (
	NotificationApplicationReceived NotificationType = "application_received"
	NotificationApplicationStatus   NotificationType = "application_status"
	NotificationAccountVerified     NotificationType = "account_verified"
	NotificationAccountUnverified   NotificationType = "account_unverified"
	NotificationJobClosed           NotificationType = "job_closed"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationApplicationReceived, NotificationApplicationStatus,
		NotificationAccountVerified, NotificationAccountUnverified, NotificationJobClosed:
		return true
	}
	return false
}

// Notification chỉ được tạo mới, không sửa không xóa
type Notification struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	RecipientID   uint             `json:"recipientId" gorm:"not null;index"`
	Type          NotificationType `json:"type" gorm:"type:varchar(32);not null"`
	Message       string           `gorm:"type:text;not null" json:"message"`
	JobID         *uint            `json:"jobId,omitempty"`
	ApplicationID *uint            `json:"applicationId,omitempty"`
	RevenueID     *uint            `json:"revenueId,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;index" json:"createdAt"`
}

type AnnouncementTarget string

const (
	TargetAll       AnnouncementTarget = "all"
	TargetJobseeker AnnouncementTarget = "jobseeker"
	TargetEmployer  AnnouncementTarget = "employer"
	TargetAdmin     AnnouncementTarget = "admin"
)

func (t AnnouncementTarget) Valid() bool {
	switch t {
	case TargetAll, TargetJobseeker, TargetEmployer, TargetAdmin:
		return true
	}
	return false
}

// Matches cho biết announcement có dành cho role này không
func (t AnnouncementTarget) Matches(role Role) bool {
	return t == TargetAll || string(t) == role.String()
}

type Announcement struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	Title     string             `json:"title" gorm:"not null"`
	Message   string             `json:"message" gorm:"type:text;not null"`
	Target    AnnouncementTarget `json:"target" gorm:"type:varchar(16);not null;index"`
	IsActive  bool               `json:"isActive" gorm:"default:true"`
	CreatedBy uint               `json:"createdBy"`
	CreatedAt time.Time          `json:"createdAt" gorm:"autoCreateTime"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

// ActiveAt: announcement đang bật và chưa hết hạn
func (a *Announcement) ActiveAt(now time.Time) bool {
	return a.IsActive && (a.ExpiresAt == nil || a.ExpiresAt.After(now))
}
