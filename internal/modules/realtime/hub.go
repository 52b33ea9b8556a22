package realtime

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

const sendBufferSize = 32

func UserChannel(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

func BookingChannel(bookingID string) string {
	return "booking:" + bookingID
}

// Client is one socket connection. Outgoing frames are queued on send and
// written by the connection's write pump.
type Client struct {
	userID   int64
	send     chan []byte
	channels map[string]struct{}
	closed   bool
}

func newClient(userID int64) *Client {
	return &Client{
		userID:   userID,
		send:     make(chan []byte, sendBufferSize),
		channels: make(map[string]struct{}),
	}
}

// Hub fans events out to the clients subscribed to a channel. Delivery is
// best effort: a client whose buffer is full misses the frame.
type Hub struct {
	mutex    sync.RWMutex
	channels map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]struct{}),
	}
}

// Register subscribes a new client to its user channel.
func (h *Hub) Register(c *Client) {
	h.Join(c, UserChannel(c.userID))
}

func (h *Hub) Join(c *Client, channel string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c.closed {
		return
	}
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*Client]struct{})
		h.channels[channel] = subs
	}
	subs[c] = struct{}{}
	c.channels[channel] = struct{}{}
}

// Unregister removes the client from every channel and closes its queue.
func (h *Hub) Unregister(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if c.closed {
		return
	}
	for channel := range c.channels {
		if subs, ok := h.channels[channel]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.channels, channel)
			}
		}
	}
	c.channels = map[string]struct{}{}
	c.closed = true
	close(c.send)
}

// Emit sends an event to every subscriber of channel and returns how many
// clients accepted it.
func (h *Hub) Emit(channel, event string, data any) (int, error) {
	frame, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		return 0, err
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	delivered := 0
	for c := range h.channels[channel] {
		if h.enqueueLocked(c, frame) {
			delivered++
		}
	}
	return delivered, nil
}

// SendTo delivers an event to a single client.
func (h *Hub) SendTo(c *Client, event string, data any) bool {
	frame, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("realtime: encode event")
		return false
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.enqueueLocked(c, frame)
}

func (h *Hub) enqueueLocked(c *Client, frame []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		logrus.WithField("user_id", c.userID).Warn("realtime: client buffer full, frame dropped")
		return false
	}
}

func (h *Hub) Subscribers(channel string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.channels[channel])
}

func (h *Hub) IsOnline(userID int64) bool {
	return h.Subscribers(UserChannel(userID)) > 0
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, subs := range h.channels {
		for c := range subs {
			h.removeLocked(c)
		}
	}
	h.channels = make(map[string]map[*Client]struct{})
}
