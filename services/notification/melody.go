package notification

import (
	"context"
	"fmt"

	"jobboard/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Các key lưu trong melody session khi handshake /ws
const (
	SessionKeyUserID = "userID"
	SessionKeyRole   = "role"
)

// SessionKeys là keys gắn vào session của actor đã xác thực
func SessionKeys(actor models.Actor) map[string]interface{} {
	return map[string]interface{}{
		SessionKeyUserID: actor.UserID,
		SessionKeyRole:   actor.Role,
	}
}

// Event là payload JSON đẩy xuống client qua websocket
type Event struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

// BroadcastTo gửi event tới các session có role thuộc target
func (s *MelodyService) BroadcastTo(target models.AnnouncementTarget, kind string, data interface{}) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(Event{Kind: kind, Data: data})
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(payload, func(session *melody.Session) bool {
		return SessionInTarget(session, target)
	})
}

// Deliver chỉ gửi tới các session của người nhận
func (s *MelodyService) Deliver(_ context.Context, n *models.Notification) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(Event{Kind: "notification", Data: n})
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(payload, func(session *melody.Session) bool {
		return SessionBelongsTo(session, n.RecipientID)
	})
}

// SessionBelongsTo kiểm tra session có thuộc user không
func SessionBelongsTo(session *melody.Session, userID uint) bool {
	v, ok := session.Get(SessionKeyUserID)
	if !ok {
		return false
	}
	id, ok := v.(uint)
	return ok && id == userID
}

// SessionInTarget kiểm tra role của session có thuộc target không; session thiếu role thì bỏ qua
func SessionInTarget(session *melody.Session, target models.AnnouncementTarget) bool {
	v, ok := session.Get(SessionKeyRole)
	if !ok {
		return false
	}
	role, ok := v.(models.Role)
	return ok && target.Matches(role)
}
