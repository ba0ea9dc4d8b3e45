package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawcare/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// UpdateStatusIf transitions a booking only when its current status still
// equals from. Returns false when another writer got there first; the
// row is left untouched in that case.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ClaimSitter assigns a sitter to an open posting. The write lands only
// when the booking is still pending and unclaimed, so exactly one of N
// concurrent claimers wins.
func (r *BookingRepository) ClaimSitter(ctx context.Context, id, sitterID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ? AND sitter_id IS NULL", id, domain.BookingPending).
		Updates(map[string]interface{}{
			"sitter_id":  sitterID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ApproveUnclaimed claims and approves an open posting in a single
// compare-and-set: sitter assignment and the pending -> upcoming
// transition land together or not at all.
func (r *BookingRepository) ApproveUnclaimed(ctx context.Context, id, sitterID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ? AND sitter_id IS NULL", id, domain.BookingPending).
		Updates(map[string]interface{}{
			"sitter_id":  sitterID,
			"status":     domain.BookingUpcoming,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("owner_id = ?", ownerID).
			Order("start_time DESC").
			Find(&out).Error
	})
	return out, err
}

func (r *BookingRepository) ListBySitter(ctx context.Context, sitterID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("sitter_id = ?", sitterID).
			Order("start_time DESC").
			Find(&out).Error
	})
	return out, err
}

// ListOpenPostings returns pending bookings no sitter has claimed yet.
func (r *BookingRepository) ListOpenPostings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("status = ? AND sitter_id IS NULL", domain.BookingPending).
			Order("start_time ASC").
			Find(&out).Error
	})
	return out, err
}
