package domain

import "time"

type MessageType string

const (
	MessageText   MessageType = "TEXT"
	MessageImage  MessageType = "IMAGE"
	MessageSystem MessageType = "SYSTEM"
)

type Message struct {
	ID         int64       `json:"id" gorm:"primaryKey"`
	SenderID   int64       `json:"senderId" gorm:"index;not null"`
	ReceiverID int64       `json:"receiverId" gorm:"index;not null"`
	BookingID  *string     `json:"bookingId,omitempty" gorm:"size:64;index"`
	Content    string      `json:"content" gorm:"type:text;not null"`
	Type       MessageType `json:"type" gorm:"size:16;not null"`
	IsRead     bool        `json:"isRead"`
	CreatedAt  time.Time   `json:"createdAt"`

	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}
