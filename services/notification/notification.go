package notification

import (
	"context"
	"fmt"

	"jobboard/models"
	"jobboard/repository"
	"jobboard/services/logger"
)

// Message là yêu cầu gửi thông báo tới một user
type Message struct {
	RecipientID   uint
	Type          models.NotificationType
	Text          string
	JobID         *uint
	ApplicationID *uint
	RevenueID     *uint
}

// Notifier gửi thông báo theo kiểu best effort: không bao giờ trả lỗi cho caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// Sink đẩy thông báo đã lưu ra các kênh realtime (websocket, queue...)
type Sink interface {
	Deliver(ctx context.Context, n *models.Notification) error
}

type Service struct {
	repo   repository.NotificationRepository
	sinks  []Sink
	logger logger.Logger
}

type ServiceOptions struct {
	Repo   repository.NotificationRepository
	Sinks  []Sink
	Logger logger.Logger
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		repo:   opts.Repo,
		sinks:  opts.Sinks,
		logger: opts.Logger,
	}
}

// Notify ghi một dòng notification rồi đẩy ra các sink. Lỗi chỉ được log lại.
func (s *Service) Notify(ctx context.Context, msg Message) {
	if msg.RecipientID == 0 || !msg.Type.Valid() {
		s.logger.Error("❌ Bỏ qua thông báo không hợp lệ: recipient=%d type=%q", msg.RecipientID, msg.Type)
		return
	}

	n := &models.Notification{
		RecipientID:   msg.RecipientID,
		Type:          msg.Type,
		Message:       msg.Text,
		JobID:         msg.JobID,
		ApplicationID: msg.ApplicationID,
		RevenueID:     msg.RevenueID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("❌ Lỗi lưu thông báo cho user %d: %v", msg.RecipientID, err)
		return
	}

	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			s.logger.Error("❌ Lỗi gửi thông báo %d qua %T: %v", n.ID, sink, err)
		}
	}
}

// List trả về thông báo của một user, mới nhất trước
func (s *Service) List(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, limit)
}

// Ref trả về con trỏ tới id, tiện cho các trường tham chiếu tùy chọn
func Ref(id uint) *uint {
	return &id
}

// MessageBuilder dựng nội dung thông báo theo loại sự kiện
type MessageBuilder struct {
	kind     models.NotificationType
	jobTitle string
	name     string
	status   string
}

func NewMessageBuilder(kind models.NotificationType) *MessageBuilder {
	return &MessageBuilder{kind: kind}
}

func (b *MessageBuilder) Job(title string) *MessageBuilder {
	b.jobTitle = title
	return b
}

func (b *MessageBuilder) Name(name string) *MessageBuilder {
	b.name = name
	return b
}

func (b *MessageBuilder) Status(status string) *MessageBuilder {
	b.status = status
	return b
}

func (b *MessageBuilder) Build() string {
	switch b.kind {
	case models.NotificationApplicationReceived:
		return fmt.Sprintf("🔔 %s applied to your job \"%s\".", b.name, b.jobTitle)
	case models.NotificationApplicationStatus:
		return fmt.Sprintf("🔔 Your application for \"%s\" is now %s.", b.jobTitle, b.status)
	case models.NotificationAccountVerified:
		return "✅ Your account has been verified."
	case models.NotificationAccountUnverified:
		return "⚠️ Your account verification has been revoked."
	case models.NotificationJobClosed:
		return fmt.Sprintf("🔔 Your job \"%s\" passed its deadline and was closed.", b.jobTitle)
	default:
		return ""
	}
}
