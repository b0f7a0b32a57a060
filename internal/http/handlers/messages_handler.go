// Direct messaging HTTP handlers.
//
// Routes:
//   - POST /messages            (send)
//   - GET  /messages            (list own, filterable)
//   - PUT  /messages/{id}/read  (mark read, recipient)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/utils"
)

// ListMessagesResponse wraps a page of messages and pagination information.
type ListMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination utils.Pagination `json:"pagination"`
}

// CreateMessage sends a direct message to another user.
func (h *Handlers) CreateMessage() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Body:   schema.MessageCreate,
		Status: http.StatusCreated,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.msgSvc.Send(ctx, auth, in.Body)
	})
}

// ListMessages returns a paginated list of the caller's messages, optionally
// narrowed to one conversation partner or unread messages only.
func (h *Handlers) ListMessages() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Query: schema.MessageList,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		msgs, total, err := h.msgSvc.List(ctx, auth, in.Query)
		if err != nil {
			return nil, err
		}
		page := in.Query.IntDefault("page", 1)
		limit := in.Query.IntDefault("limit", 10)
		return ListMessagesResponse{
			Messages:   msgs,
			Pagination: utils.NewPagination(page, limit, total),
		}, nil
	})
}

// MarkMessageRead stamps a received message as read. Only the recipient may
// do this; re-reading an already read message is a no-op.
func (h *Handlers) MarkMessageRead() gin.HandlerFunc {
	return h.handle(RouteSpec{}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.msgSvc.MarkRead(ctx, auth, in.Params["id"])
	})
}
