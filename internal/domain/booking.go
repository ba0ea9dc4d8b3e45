package domain

import "time"

type BookingStatus string

const (
	// BookingPending is awaiting a sitter decision. An open posting is
	// pending with SitterID nil until a sitter claims it.
	BookingPending   BookingStatus = "pending"
	BookingUpcoming  BookingStatus = "upcoming"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transition can leave the status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID       string        `json:"owner_id" gorm:"not null;index"`
	SitterID      *string       `json:"sitter_id,omitempty" gorm:"index"`
	PetID         string        `json:"pet_id" gorm:"not null"`
	StartTime     time.Time     `json:"start_time" validate:"required"`
	DurationHours int           `json:"duration_hours" validate:"required,gt=0"`
	TotalCost     float64       `json:"total_cost"`
	Status        BookingStatus `json:"status" gorm:"index"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`

	// WalkCode is the one-time six-digit code generated at creation.
	// It gates the upcoming -> active transition and is never rotated.
	WalkCode string `json:"-" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Pet    *Pet    `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	Sitter *Sitter `json:"sitter,omitempty" gorm:"foreignKey:SitterID"`
}

func (Booking) TableName() string { return "bookings" }
