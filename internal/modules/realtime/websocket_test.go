package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/repository"
)

type wsFixture struct {
	db       *gorm.DB
	hub      *Hub
	tokens   *jwt.Service
	server   *httptest.Server
	customer domain.User
	provider domain.User
	stranger domain.User
	booking  domain.Booking
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.ConnectMemory(t.Name())
	require.NoError(t, err)

	f := &wsFixture{db: db, hub: NewHub(), tokens: jwt.New("ws-secret", time.Hour)}

	f.customer = domain.User{Email: "c@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	f.provider = domain.User{Email: "p@example.com", PasswordHash: "x", Role: domain.RoleProvider}
	f.stranger = domain.User{Email: "s@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&f.customer).Error)
	require.NoError(t, db.Create(&f.provider).Error)
	require.NoError(t, db.Create(&f.stranger).Error)

	p := domain.Provider{UserID: f.provider.ID, BusinessName: "P", IsAvailable: true}
	require.NoError(t, db.Omit("User").Create(&p).Error)

	f.booking = domain.Booking{
		BookingID:     "b-ws-1",
		CustomerID:    f.customer.ID,
		ServiceID:     1,
		ProviderID:    p.ID,
		ScheduledDate: "2024-06-01",
		ScheduledTime: "10:00",
		Duration:      60,
		Status:        domain.BookingPending,
	}
	require.NoError(t, db.Omit("Customer", "Service", "Provider").Create(&f.booking).Error)

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewBookingRepository(db),
		repository.NewMessageRepository(db),
	)
	r := gin.New()
	NewWSHandler(f.hub, f.tokens, svc).RegisterRoutes(r)
	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *wsFixture) dial(t *testing.T, user domain.User) *websocket.Conn {
	t.Helper()
	token, err := f.tokens.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return f.hub.IsOnline(user.ID) }, time.Second, 10*time.Millisecond)
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Event{Event: event, Data: data}))
}

func receive(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestWebSocket_RejectsMissingAndInvalidToken(t *testing.T) {
	f := newWSFixture(t)
	base := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(base, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(base+"?token=garbage", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ghost, _ := f.tokens.GenerateToken(9999, "CUSTOMER")
	_, resp, err = websocket.DefaultDialer.Dial(base+"?token="+ghost, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocket_BearerHeader(t *testing.T) {
	f := newWSFixture(t)
	token, _ := f.tokens.GenerateToken(f.customer.ID, "CUSTOMER")

	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(f.server.URL, "http")+"/ws", header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	_ = conn.Close()
}

func TestWebSocket_JoinBooking(t *testing.T) {
	f := newWSFixture(t)
	customer := f.dial(t, f.customer)
	stranger := f.dial(t, f.stranger)

	send(t, stranger, EventJoinBooking, JoinBookingPayload{BookingID: f.booking.BookingID})
	ev := receive(t, stranger)
	assert.Equal(t, EventError, ev.Event)
	assert.Equal(t, "Access denied", ev.Data.(map[string]any)["message"])

	send(t, customer, EventJoinBooking, JoinBookingPayload{BookingID: "missing"})
	assert.Equal(t, EventError, receive(t, customer).Event)

	send(t, customer, EventJoinBooking, JoinBookingPayload{BookingID: f.booking.BookingID})
	assert.Equal(t, EventBookingJoined, receive(t, customer).Event)
	assert.Equal(t, 1, f.hub.Subscribers(BookingChannel(f.booking.BookingID)))
}

func TestWebSocket_SendMessageAndMarkRead(t *testing.T) {
	f := newWSFixture(t)
	customer := f.dial(t, f.customer)
	provider := f.dial(t, f.provider)

	send(t, provider, EventJoinBooking, JoinBookingPayload{BookingID: f.booking.BookingID})
	require.Equal(t, EventBookingJoined, receive(t, provider).Event)

	bookingID := f.booking.BookingID
	send(t, customer, EventSendMessage, SendMessagePayload{
		ReceiverID: f.provider.ID,
		Content:    "On my way",
		BookingID:  &bookingID,
	})

	ack := receive(t, customer)
	require.Equal(t, EventMessageSent, ack.Event)
	msgID := int64(ack.Data.(map[string]any)["id"].(float64))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		got[receive(t, provider).Event] = true
	}
	assert.True(t, got[EventNewMessage])
	assert.True(t, got[EventNewBookingMessage])

	send(t, provider, EventMarkRead, MarkReadPayload{MessageIDs: []int64{msgID}})
	ev := receive(t, provider)
	require.Equal(t, EventMessagesMarkedRead, ev.Event)
	assert.Equal(t, float64(1), ev.Data.(map[string]any)["updated"])

	var stored domain.Message
	require.NoError(t, f.db.First(&stored, msgID).Error)
	assert.True(t, stored.IsRead)
	assert.Equal(t, domain.MessageText, stored.Type)
}

func TestWebSocket_InvalidEvents(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, f.customer)

	send(t, conn, "dance", nil)
	ev := receive(t, conn)
	assert.Equal(t, EventError, ev.Event)
	assert.Equal(t, "Unknown event: dance", ev.Data.(map[string]any)["message"])

	send(t, conn, EventSendMessage, SendMessagePayload{ReceiverID: f.provider.ID})
	assert.Equal(t, EventError, receive(t, conn).Event)

	send(t, conn, EventSendMessage, SendMessagePayload{ReceiverID: 9999, Content: "hi"})
	ev = receive(t, conn)
	assert.Equal(t, "Receiver not found", ev.Data.(map[string]any)["message"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.Equal(t, EventError, receive(t, conn).Event)
}
