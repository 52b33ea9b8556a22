package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/response"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	eventTimeout   = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Connections are authenticated by token, not by origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub     *Hub
	jwt     *jwt.Service
	service *Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, service *Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwtService, service: service}
}

func (h *WSHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws", h.HandleWebSocket)
}

// HandleWebSocket upgrades an authenticated request and subscribes the
// connection to the caller's user channel.
//
// Endpoint: GET /ws?token=JWT or with an Authorization: Bearer header.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = middleware.BearerToken(c.GetHeader("Authorization"))
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "Access token required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUnauthorizedConnect) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		response.Internal(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := newClient(user.ID)
	h.hub.Register(client)
	log := logrus.WithField("user_id", user.ID)
	log.Info("websocket connected")

	go h.writePump(conn, client)
	h.readPump(c.Request.Context(), conn, client)

	log.Info("websocket disconnected")
}

func (h *WSHandler) readPump(ctx context.Context, conn *websocket.Conn, client *Client) {
	defer func() {
		h.hub.Unregister(client)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("user_id", client.userID).Warn("websocket read failed")
			}
			return
		}

		var in incomingEvent
		if err := json.Unmarshal(raw, &in); err != nil {
			h.sendError(client, "Malformed frame")
			continue
		}

		eventCtx, cancel := context.WithTimeout(ctx, eventTimeout)
		h.dispatch(eventCtx, client, in)
		cancel()
	}
}

// writePump is the only writer on conn.
func (h *WSHandler) writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, client *Client, in incomingEvent) {
	switch in.Event {
	case EventJoinBooking:
		var p JoinBookingPayload
		if err := json.Unmarshal(in.Data, &p); err != nil || p.BookingID == "" {
			h.sendError(client, "bookingId is required")
			return
		}
		h.handleJoinBooking(ctx, client, p)
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(in.Data, &p); err != nil {
			h.sendError(client, "Malformed message payload")
			return
		}
		h.handleSendMessage(ctx, client, p)
	case EventMarkRead:
		var p MarkReadPayload
		if err := json.Unmarshal(in.Data, &p); err != nil {
			h.sendError(client, "Malformed mark_read payload")
			return
		}
		h.handleMarkRead(ctx, client, p)
	default:
		h.sendError(client, "Unknown event: "+in.Event)
	}
}

func (h *WSHandler) handleJoinBooking(ctx context.Context, client *Client, p JoinBookingPayload) {
	if err := h.service.CanJoinBooking(ctx, client.userID, p.BookingID); err != nil {
		h.sendServiceError(client, err)
		return
	}
	h.hub.Join(client, BookingChannel(p.BookingID))
	h.hub.SendTo(client, EventBookingJoined, p)
}

func (h *WSHandler) handleSendMessage(ctx context.Context, client *Client, p SendMessagePayload) {
	msg, err := h.service.SendMessage(ctx, client.userID, p)
	if err != nil {
		h.sendServiceError(client, err)
		return
	}

	h.emit(UserChannel(msg.ReceiverID), EventNewMessage, msg)
	if msg.BookingID != nil {
		h.emit(BookingChannel(*msg.BookingID), EventNewBookingMessage, msg)
	}
	h.hub.SendTo(client, EventMessageSent, msg)
}

func (h *WSHandler) handleMarkRead(ctx context.Context, client *Client, p MarkReadPayload) {
	n, err := h.service.MarkRead(ctx, client.userID, p.MessageIDs)
	if err != nil {
		h.sendServiceError(client, err)
		return
	}
	h.hub.SendTo(client, EventMessagesMarkedRead, MarkedReadData{MessageIDs: p.MessageIDs, Updated: n})
}

func (h *WSHandler) emit(channel, event string, data any) {
	if _, err := h.hub.Emit(channel, event, data); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"channel": channel, "event": event}).Error("realtime emit failed")
	}
}

func (h *WSHandler) sendServiceError(client *Client, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		h.sendError(client, "Booking not found")
	case errors.Is(err, ErrNotParticipant):
		h.sendError(client, "Access denied")
	case errors.Is(err, ErrInvalidMessage), errors.Is(err, ErrUnsupportedType):
		h.sendError(client, err.Error())
	case errors.Is(err, ErrReceiverNotFound):
		h.sendError(client, "Receiver not found")
	default:
		logrus.WithError(err).WithField("user_id", client.userID).Error("realtime event failed")
		h.sendError(client, "Internal server error")
	}
}

func (h *WSHandler) sendError(client *Client, message string) {
	h.hub.SendTo(client, EventError, ErrorData{Message: message})
}
