package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"jobboard/models"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsHub dựng server websocket gắn keys giống handshake /ws
type wsHub struct {
	m   *melody.Melody
	srv *httptest.Server
}

func newWSHub(t *testing.T) *wsHub {
	t.Helper()
	m := melody.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.URL.Query().Get("id"))
		role, _ := models.ParseRole(r.URL.Query().Get("role"))
		_ = m.HandleRequestWithKeys(w, r, SessionKeys(models.Actor{UserID: uint(id), Role: role}))
	}))
	t.Cleanup(func() {
		m.Close()
		srv.Close()
	})
	return &wsHub{m: m, srv: srv}
}

func (h *wsHub) dial(t *testing.T, id uint, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/?id=" + strconv.Itoa(int(id)) + "&role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestBroadcastToReachesOnlyTargetRole(t *testing.T) {
	hub := newWSHub(t)
	svc := NewMelodyService(hub.m)
	seeker := hub.dial(t, 1, "jobseeker")
	employer := hub.dial(t, 2, "employer")
	require.Eventually(t, func() bool { return hub.m.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, svc.BroadcastTo(models.TargetEmployer, "announcement", map[string]string{"title": "Employers only"}))
	require.NoError(t, svc.BroadcastTo(models.TargetAll, "announcement", map[string]string{"title": "Everyone"}))

	// hub gửi theo thứ tự nên tin đầu tiên của jobseeker phải là tin cho all
	ev := readEvent(t, seeker)
	assert.Equal(t, "announcement", ev.Kind)
	assert.Equal(t, map[string]interface{}{"title": "Everyone"}, ev.Data)

	assert.Equal(t, map[string]interface{}{"title": "Employers only"}, readEvent(t, employer).Data)
	assert.Equal(t, map[string]interface{}{"title": "Everyone"}, readEvent(t, employer).Data)
}

func TestDeliverReachesOnlyRecipient(t *testing.T) {
	hub := newWSHub(t)
	svc := NewMelodyService(hub.m)
	first := hub.dial(t, 1, "jobseeker")
	second := hub.dial(t, 2, "jobseeker")
	require.Eventually(t, func() bool { return hub.m.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, svc.Deliver(context.Background(), &models.Notification{ID: 10, RecipientID: 2, Message: "for two"}))
	require.NoError(t, svc.Deliver(context.Background(), &models.Notification{ID: 11, RecipientID: 1, Message: "for one"}))

	ev := readEvent(t, first)
	assert.Equal(t, "notification", ev.Kind)
	assert.Equal(t, "for one", ev.Data.(map[string]interface{})["message"])
	assert.Equal(t, "for two", readEvent(t, second).Data.(map[string]interface{})["message"])
}

func TestSessionKeysCarryRole(t *testing.T) {
	keys := SessionKeys(models.Actor{UserID: 3, Role: models.RoleEmployer})
	assert.Equal(t, uint(3), keys[SessionKeyUserID])
	assert.Equal(t, models.RoleEmployer, keys[SessionKeyRole])
}
