package chat

import (
	"context"

	"pawcare/internal/domain"
)

// ScopeKind addresses the two chat channel families.
type ScopeKind string

const (
	ScopeBooking      ScopeKind = "booking"
	ScopeConversation ScopeKind = "conversation"
)

// Scope is the addressing unit for chat: exactly one booking or one
// conversation.
type Scope struct {
	Kind ScopeKind
	ID   string
}

func BookingScope(id string) Scope      { return Scope{Kind: ScopeBooking, ID: id} }
func ConversationScope(id string) Scope { return Scope{Kind: ScopeConversation, ID: id} }

func (s Scope) Key() string { return string(s.Kind) + ":" + s.ID }

// ChatRepository owns the conversation and message rows.
type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, ownerID, sitterID string) (*domain.Conversation, error)
	GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListConversationsFor(ctx context.Context, partyID string, role domain.UserRole) ([]domain.Conversation, error)

	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListBookingMessages(ctx context.Context, bookingID string, afterID int64) ([]domain.Message, error)
	ListConversationMessages(ctx context.Context, conversationID string, afterID int64) ([]domain.Message, error)
	LastBookingMessage(ctx context.Context, bookingID string) (*domain.Message, error)
	LastConversationMessage(ctx context.Context, conversationID string) (*domain.Message, error)
	TouchConversation(ctx context.Context, conversationID string) error
}

// BookingStore is the read-only view the messaging facade needs; it
// never writes booking state.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	ListBySitter(ctx context.Context, sitterID string) ([]domain.Booking, error)
}

// SitterDirectory maps between sitter profile ids and user ids when
// resolving booking participants and chat intents.
type SitterDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Sitter, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Sitter, error)
}

// UserStore verifies that a conversation counterpart actually exists.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
