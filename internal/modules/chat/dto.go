package chat

import (
	"time"

	"pawcare/internal/domain"
)

type CreateConversationRequest struct {
	// CounterpartID is a sitter profile id when the caller is an owner,
	// and an owner user id when the caller is a sitter.
	CounterpartID string `json:"counterpart_id" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

type MessageResponse struct {
	ID             int64  `json:"id"`
	BookingID      string `json:"booking_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	IsMine         bool   `json:"is_mine"`
	CreatedAt      string `json:"created_at"`
}

func ToMessageResponse(m *domain.Message, currentUserID string) *MessageResponse {
	if m == nil {
		return nil
	}

	resp := &MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		IsMine:    m.SenderID == currentUserID,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.BookingID != nil {
		resp.BookingID = *m.BookingID
	}
	if m.ConversationID != nil {
		resp.ConversationID = *m.ConversationID
	}
	return resp
}
