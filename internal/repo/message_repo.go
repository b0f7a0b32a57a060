// Repository functions for the Message model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/domain"
)

// MessageFilter narrows message listings for one participant. UserID is
// mandatory (a user only ever sees their own conversations); With restricts
// to one correspondent; UnreadOnly keeps messages the user has not read.
type MessageFilter struct {
	UserID     string
	With       string
	UnreadOnly bool
}

// CreateMessage inserts a new message row from sender to recipient.
func CreateMessage(ctx context.Context, db *gorm.DB, msg *domain.Message) (*domain.Message, error) {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessage fetches a single message by ID. Returns ErrNotFound when
// missing.
func GetMessage(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// messageQuery composes the shared WHERE clause for a participant's inbox
// and sent mail combined.
func messageQuery(ctx context.Context, db *gorm.DB, f MessageFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Message{}).
		Where("sender_id = ? OR recipient_id = ?", f.UserID, f.UserID)
	if f.With != "" {
		q = q.Where("sender_id = ? OR recipient_id = ?", f.With, f.With)
	}
	if f.UnreadOnly {
		q = q.Where("recipient_id = ? AND read_at IS NULL", f.UserID)
	}
	return q
}

// CountMessages returns the total number of messages matching the filter.
func CountMessages(ctx context.Context, db *gorm.DB, f MessageFilter) (int64, error) {
	var total int64
	err := messageQuery(ctx, db, f).Count(&total).Error
	return total, err
}

// ListMessagesPage returns a paginated slice of messages matching the
// filter, newest first.
func ListMessagesPage(ctx context.Context, db *gorm.DB, f MessageFilter, offset, limit int) ([]domain.Message, error) {
	var out []domain.Message
	err := messageQuery(ctx, db, f).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkMessageRead stamps read_at on a message delivered to recipientID.
// Returns ErrNotFound when the message does not exist or was not addressed
// to that recipient; the caller distinguishes the two if it needs to.
func MarkMessageRead(ctx context.Context, db *gorm.DB, id, recipientID string, at time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ? AND recipient_id = ? AND read_at IS NULL", id, recipientID).
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
