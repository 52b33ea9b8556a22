package realtime

import (
	"context"
	"errors"

	"servicehub/internal/domain"
)

const (
	RoutingBookingCreated = "booking.created"
	RoutingBookingUpdated = "booking.updated"
)

// Notifier pushes booking events to connected clients and, when a publisher
// is configured, mirrors them to the broker.
type Notifier struct {
	hub       *Hub
	publisher Publisher
}

// NewNotifier accepts a nil publisher.
func NewNotifier(hub *Hub, publisher Publisher) *Notifier {
	return &Notifier{hub: hub, publisher: publisher}
}

func (n *Notifier) BookingCreated(ctx context.Context, providerUserID int64, b *domain.Booking) error {
	_, err := n.hub.Emit(UserChannel(providerUserID), EventNewBooking, b)
	return errors.Join(err, n.publish(ctx, RoutingBookingCreated, b))
}

func (n *Notifier) BookingUpdated(ctx context.Context, b *domain.Booking) error {
	_, errUser := n.hub.Emit(UserChannel(b.CustomerID), EventBookingUpdate, b)
	_, errBooking := n.hub.Emit(BookingChannel(b.BookingID), EventBookingUpdate, b)
	return errors.Join(errUser, errBooking, n.publish(ctx, RoutingBookingUpdated, b))
}

func (n *Notifier) publish(ctx context.Context, key string, b *domain.Booking) error {
	if n.publisher == nil {
		return nil
	}
	return n.publisher.PublishJSON(ctx, key, b)
}
