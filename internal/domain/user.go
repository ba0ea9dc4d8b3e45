package domain

import "time"

type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleSitter UserRole = "sitter"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string    `json:"email" validate:"required,email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
