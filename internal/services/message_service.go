// MessageService: direct messages between participants. A message is visible
// only to its sender and recipient; read receipts are recipient-only.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/repo"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/utils"
)

// MessageService implements the use-cases around direct messages.
type MessageService struct {
	// DB is the database handle used for all message operations.
	DB *gorm.DB
}

// Send creates a message from auth.UserID to the recipient named in the
// validated input. The recipient must have a profile (404 otherwise) and
// must not be the sender.
func (s *MessageService) Send(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.Message, error) {
	recipientID := in.Str("recipient_id")
	if recipientID == auth.UserID {
		return nil, apierr.ValidationFailed("", []apierr.FieldError{
			{Field: "recipient_id", Message: "cannot be yourself"},
		})
	}
	if _, err := repo.GetProfileByUserID(ctx, s.DB, recipientID); err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("recipient")
		}
		return nil, err
	}

	msg := &domain.Message{
		SenderID:    auth.UserID,
		RecipientID: recipientID,
		Content:     in.Str("content"),
	}
	return repo.CreateMessage(ctx, s.DB, msg)
}

// List returns a page of the caller's messages plus the total. The optional
// "with" filter narrows to one correspondent; "unread" keeps unread inbox
// messages only.
func (s *MessageService) List(ctx context.Context, auth domain.AuthContext, in schema.Data) ([]domain.Message, int64, error) {
	filter := repo.MessageFilter{
		UserID: auth.UserID,
		With:   in.Str("with"),
	}
	if unread, ok := in.Bool("unread"); ok {
		filter.UnreadOnly = unread
	}

	page := in.IntDefault("page", 1)
	limit := in.IntDefault("limit", 10)

	total, err := repo.CountMessages(ctx, s.DB, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Message{}, 0, nil
	}
	items, err := repo.ListMessagesPage(ctx, s.DB, filter, utils.Offset(page, limit), limit)
	return items, total, err
}

// MarkRead stamps a read receipt on a message addressed to the caller.
// Marking an already-read message is a no-op, not an error, so clients can
// retry safely.
func (s *MessageService) MarkRead(ctx context.Context, auth domain.AuthContext, id string) (*domain.Message, error) {
	msg, err := repo.GetMessage(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != auth.UserID {
		return nil, apierr.Forbidden("only the recipient can mark a message read")
	}
	if msg.ReadAt != nil {
		return msg, nil
	}

	now := time.Now().UTC()
	if err := repo.MarkMessageRead(ctx, s.DB, id, auth.UserID, now); err != nil && !isNotFound(err) {
		// A concurrent MarkRead can zero RowsAffected; re-reading below
		// settles it either way.
		return nil, err
	}
	return repo.GetMessage(ctx, s.DB, id)
}
