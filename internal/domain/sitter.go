package domain

import "time"

// Sitter is the provider-side profile. HourlyRate is read once at booking
// creation; later rate changes never touch existing bookings.
type Sitter struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID          string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio             string    `json:"bio,omitempty" gorm:"type:text"`
	HourlyRate      float64   `json:"hourly_rate" validate:"required,gt=0"`
	ExperienceYears int       `json:"experience_years,omitempty"`
	Services        string    `json:"services,omitempty"`
	Available       bool      `json:"available" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Sitter) TableName() string { return "sitters" }
