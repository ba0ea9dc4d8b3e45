package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"pawcare/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreateConversation returns the conversation for an
// (owner, sitter) pair, creating it on first contact. Concurrent callers
// race on the unique pair index; the loser refetches the winner's row,
// so exactly one conversation ever exists per pair.
func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, ownerID, sitterID string) (*domain.Conversation, error) {
	conv, err := r.GetConversationByPair(ctx, ownerID, sitterID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	created := &domain.Conversation{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		SitterID: sitterID,
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		if isDuplicateKey(err) {
			return r.GetConversationByPair(ctx, ownerID, sitterID)
		}
		return nil, err
	}
	return created, nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// gorm's sqlite dialector only translates mattn/go-sqlite3 error
	// types; errors from the pure-Go driver have to be matched on the
	// constraint message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) GetConversationByPair(ctx context.Context, ownerID, sitterID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("owner_id = ? AND sitter_id = ?", ownerID, sitterID).
			First(&conv).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversationsFor returns every conversation where the party
// occupies the given role.
func (r *ChatRepository) ListConversationsFor(ctx context.Context, partyID string, role domain.UserRole) ([]domain.Conversation, error) {
	column := "owner_id"
	if role == domain.RoleSitter {
		column = "sitter_id"
	}

	var out []domain.Conversation
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where(column+" = ?", partyID).
			Order("updated_at DESC").
			Find(&out).Error
	})
	return out, err
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListBookingMessages returns booking-scoped messages with id > afterID,
// oldest first. afterID zero means the full history.
func (r *ChatRepository) ListBookingMessages(ctx context.Context, bookingID string, afterID int64) ([]domain.Message, error) {
	var out []domain.Message
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("booking_id = ? AND id > ?", bookingID, afterID).
			Order("id ASC").
			Find(&out).Error
	})
	return out, err
}

func (r *ChatRepository) ListConversationMessages(ctx context.Context, conversationID string, afterID int64) ([]domain.Message, error) {
	var out []domain.Message
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("conversation_id = ? AND id > ?", conversationID, afterID).
			Order("id ASC").
			Find(&out).Error
	})
	return out, err
}

// LastBookingMessage returns the newest message of a booking thread, or
// nil when nothing has been sent yet.
func (r *ChatRepository) LastBookingMessage(ctx context.Context, bookingID string) (*domain.Message, error) {
	var msg domain.Message
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("booking_id = ?", bookingID).
			Order("id DESC").
			First(&msg).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *ChatRepository) LastConversationMessage(ctx context.Context, conversationID string) (*domain.Message, error) {
	var msg domain.Message
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("conversation_id = ?", conversationID).
			Order("id DESC").
			First(&msg).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// TouchConversation bumps updated_at after a send so chat lists sort by
// recent activity.
func (r *ChatRepository) TouchConversation(ctx context.Context, conversationID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
