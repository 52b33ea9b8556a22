package repository

import (
	"context"

	"gorm.io/gorm"

	"servicehub/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Omit("Sender").Create(m).Error
}

// MarkRead flags the given messages as read, limited to those addressed to
// receiverID, and returns how many rows changed.
func (r *MessageRepository) MarkRead(ctx context.Context, receiverID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("receiver_id = ? AND id IN ? AND is_read = ?", receiverID, ids, false).
		Update("is_read", true)
	return tx.RowsAffected, tx.Error
}
