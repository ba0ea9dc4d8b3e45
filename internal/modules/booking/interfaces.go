package booking

import (
	"context"

	"pawcare/internal/domain"
)

// BookingRepository is the storage contract for bookings. The *If
// methods are compare-and-set writes: they report false when another
// writer changed the row first, leaving it untouched.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
	ClaimSitter(ctx context.Context, id, sitterID string) (bool, error)
	ApproveUnclaimed(ctx context.Context, id, sitterID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error)
	ListBySitter(ctx context.Context, sitterID string) ([]domain.Booking, error)
	ListOpenPostings(ctx context.Context) ([]domain.Booking, error)
}

// SitterDirectory resolves sitter profiles and the hourly rate captured
// at booking time.
type SitterDirectory interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Sitter, error)
	GetRate(ctx context.Context, sitterID string) (float64, error)
}

type PetStore interface {
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
}

// NotificationSender is fire-and-forget: the service logs and swallows
// its errors, never failing the booking operation that triggered it.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingApproved(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error
}
