package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	"pawcare/internal/domain"
)

// Service is the messaging facade: it composes the conversation
// registry and the message log under one scope-based addressing scheme,
// and never writes booking state.
type Service struct {
	chats    ChatRepository
	bookings BookingStore
	sitters  SitterDirectory
	users    UserStore
	hub      *Hub
}

func NewService(chats ChatRepository, bookings BookingStore, sitters SitterDirectory, users UserStore, hub *Hub) *Service {
	return &Service{
		chats:    chats,
		bookings: bookings,
		sitters:  sitters,
		users:    users,
		hub:      hub,
	}
}

// GetOrCreateConversation resolves a "chat with X" intent into the one
// conversation for the pair. Owners address a sitter by profile id;
// sitters address an owner by user id — both land on the same row, so
// the lookup is symmetric.
func (s *Service) GetOrCreateConversation(ctx context.Context, actorUserID string, actorRole domain.UserRole, counterpartID string) (*domain.Conversation, error) {
	var ownerID, sitterUserID string

	switch actorRole {
	case domain.RoleOwner:
		sitter, err := s.sitters.GetByID(ctx, counterpartID)
		if err != nil {
			return nil, err
		}
		if sitter == nil {
			return nil, ErrScopeNotFound
		}
		ownerID, sitterUserID = actorUserID, sitter.UserID
	case domain.RoleSitter:
		if counterpartID == actorUserID {
			return nil, ErrValidation
		}
		owner, err := s.users.GetByID(ctx, counterpartID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.Role != domain.RoleOwner {
			return nil, ErrScopeNotFound
		}
		ownerID, sitterUserID = counterpartID, actorUserID
	default:
		return nil, ErrNotParticipant
	}

	if ownerID == sitterUserID {
		return nil, ErrValidation
	}

	return s.chats.GetOrCreateConversation(ctx, ownerID, sitterUserID)
}

// Send validates, durably appends, then publishes. Publish only happens
// after the append so no subscriber ever sees a message that failed to
// persist.
func (s *Service) Send(ctx context.Context, scope Scope, senderID, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	if err := s.requireParticipant(ctx, scope, senderID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID: senderID,
		Body:     body,
	}
	switch scope.Kind {
	case ScopeBooking:
		id := scope.ID
		msg.BookingID = &id
	case ScopeConversation:
		id := scope.ID
		msg.ConversationID = &id
	default:
		return nil, ErrValidation
	}

	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if scope.Kind == ScopeConversation {
		_ = s.chats.TouchConversation(ctx, scope.ID)
	}

	s.hub.Publish(scope, msg)
	return msg, nil
}

// History returns the scope's messages oldest first. afterID zero means
// everything; a non-zero watermark resumes after a previous read.
func (s *Service) History(ctx context.Context, scope Scope, requesterID string, afterID int64) ([]domain.Message, error) {
	if err := s.requireParticipant(ctx, scope, requesterID); err != nil {
		return nil, err
	}
	return s.listMessages(ctx, scope, afterID)
}

// Subscribe opens a live feed over one scope. The subscription is
// registered before the replay query, so a message landing exactly at
// the handoff is seen either in the replay or on the feed — callers
// dedupe by message id, never missing or double-delivering.
func (s *Service) Subscribe(ctx context.Context, scope Scope, requesterID string, sinceID int64) (*Subscription, []domain.Message, error) {
	if err := s.requireParticipant(ctx, scope, requesterID); err != nil {
		return nil, nil, err
	}

	sub := s.hub.Subscribe(scope)

	replay, err := s.listMessages(ctx, scope, sinceID)
	if err != nil {
		sub.Cancel()
		return nil, nil, err
	}
	return sub, replay, nil
}

// ChatScopeEntry is one row of the "my chats" view. CounterpartID is
// always a user id, for booking and conversation scopes alike.
type ChatScopeEntry struct {
	Kind           ScopeKind  `json:"kind"`
	BookingID      string     `json:"booking_id,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	CounterpartID  string     `json:"counterpart_id"`
	LastMessage    string     `json:"last_message,omitempty"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
}

// ListChatScopes builds a party's chat list: every booking thread they
// participate in plus their direct conversations, most recent message
// first, scopes with no messages yet last.
func (s *Service) ListChatScopes(ctx context.Context, userID string) ([]ChatScopeEntry, error) {
	var entries []ChatScopeEntry

	ownerBookings, err := s.bookings.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range ownerBookings {
		b := &ownerBookings[i]
		counterpart := ""
		if b.SitterID != nil {
			// bookings carry the sitter profile id; the chat list
			// speaks user ids
			sitter, err := s.sitters.GetByID(ctx, *b.SitterID)
			if err != nil {
				return nil, err
			}
			if sitter != nil {
				counterpart = sitter.UserID
			}
		}
		entry, err := s.bookingEntry(ctx, b.ID, counterpart)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if sitter, err := s.sitters.GetByUserID(ctx, userID); err != nil {
		return nil, err
	} else if sitter != nil {
		sitterBookings, err := s.bookings.ListBySitter(ctx, sitter.ID)
		if err != nil {
			return nil, err
		}
		for i := range sitterBookings {
			entry, err := s.bookingEntry(ctx, sitterBookings[i].ID, sitterBookings[i].OwnerID)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	for _, role := range []domain.UserRole{domain.RoleOwner, domain.RoleSitter} {
		convs, err := s.chats.ListConversationsFor(ctx, userID, role)
		if err != nil {
			return nil, err
		}
		for i := range convs {
			conv := &convs[i]
			counterpart := conv.SitterID
			if role == domain.RoleSitter {
				counterpart = conv.OwnerID
			}
			last, err := s.chats.LastConversationMessage(ctx, conv.ID)
			if err != nil {
				return nil, err
			}
			entry := ChatScopeEntry{
				Kind:           ScopeConversation,
				ConversationID: conv.ID,
				CounterpartID:  counterpart,
			}
			if last != nil {
				entry.LastMessage = last.Body
				t := last.CreatedAt
				entry.LastMessageAt = &t
			}
			entries = append(entries, entry)
		}
	}

	// most recent first, scopes without messages last
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].LastMessageAt, entries[j].LastMessageAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	return entries, nil
}

func (s *Service) bookingEntry(ctx context.Context, bookingID, counterpartID string) (ChatScopeEntry, error) {
	entry := ChatScopeEntry{
		Kind:          ScopeBooking,
		BookingID:     bookingID,
		CounterpartID: counterpartID,
	}
	last, err := s.chats.LastBookingMessage(ctx, bookingID)
	if err != nil {
		return entry, err
	}
	if last != nil {
		entry.LastMessage = last.Body
		t := last.CreatedAt
		entry.LastMessageAt = &t
	}
	return entry, nil
}

func (s *Service) listMessages(ctx context.Context, scope Scope, afterID int64) ([]domain.Message, error) {
	switch scope.Kind {
	case ScopeBooking:
		return s.chats.ListBookingMessages(ctx, scope.ID, afterID)
	case ScopeConversation:
		return s.chats.ListConversationMessages(ctx, scope.ID, afterID)
	default:
		return nil, ErrValidation
	}
}

// requireParticipant enforces scope membership: for a booking the
// requester must be its owner or its sitter's user; for a conversation,
// either party.
func (s *Service) requireParticipant(ctx context.Context, scope Scope, userID string) error {
	switch scope.Kind {
	case ScopeBooking:
		b, err := s.bookings.GetByID(ctx, scope.ID)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrScopeNotFound
		}
		if b.OwnerID == userID {
			return nil
		}
		if b.SitterID != nil {
			sitter, err := s.sitters.GetByID(ctx, *b.SitterID)
			if err != nil {
				return err
			}
			if sitter != nil && sitter.UserID == userID {
				return nil
			}
		}
		return ErrNotParticipant

	case ScopeConversation:
		conv, err := s.chats.GetConversationByID(ctx, scope.ID)
		if err != nil {
			return err
		}
		if conv == nil {
			return ErrScopeNotFound
		}
		if conv.OwnerID == userID || conv.SitterID == userID {
			return nil
		}
		return ErrNotParticipant

	default:
		return ErrValidation
	}
}
