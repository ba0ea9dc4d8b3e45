package domain

import "time"

// Conversation is a durable direct channel between one owner and one
// sitter, independent of any booking. The (owner_id, sitter_id) pair is
// unique; GetOrCreate relies on that constraint to stay idempotent under
// concurrent first contact.
type Conversation struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID   string    `json:"owner_id" gorm:"not null;uniqueIndex:idx_conversation_pair"`
	SitterID  string    `json:"sitter_id" gorm:"not null;uniqueIndex:idx_conversation_pair"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

// Message belongs to exactly one scope: either a booking or a
// conversation. The auto-increment ID doubles as the delivery sequence;
// history and live feeds are ordered by it.
type Message struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BookingID      *string   `json:"booking_id,omitempty" gorm:"index"`
	ConversationID *string   `json:"conversation_id,omitempty" gorm:"index"`
	SenderID       string    `json:"sender_id" gorm:"not null"`
	Body           string    `json:"body" gorm:"not null;type:text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
