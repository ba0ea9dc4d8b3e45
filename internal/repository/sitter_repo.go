package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawcare/internal/domain"
)

type SitterRepository struct {
	db *gorm.DB
}

func NewSitterRepository(db *gorm.DB) *SitterRepository {
	return &SitterRepository{db: db}
}

func (r *SitterRepository) Create(ctx context.Context, s *domain.Sitter) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SitterRepository) GetByID(ctx context.Context, id string) (*domain.Sitter, error) {
	var s domain.Sitter
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SitterRepository) GetByUserID(ctx context.Context, userID string) (*domain.Sitter, error) {
	var s domain.Sitter
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetRate reads the sitter's current hourly rate. Booking creation
// captures this once; the stored total never follows later changes.
func (r *SitterRepository) GetRate(ctx context.Context, sitterID string) (float64, error) {
	var s domain.Sitter
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Select("hourly_rate").
			First(&s, "id = ?", sitterID).Error
	})
	if err != nil {
		return 0, err
	}
	return s.HourlyRate, nil
}

func (r *SitterRepository) ListAvailable(ctx context.Context) ([]domain.Sitter, error) {
	var out []domain.Sitter
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("available = ?", true).
			Order("created_at ASC").
			Find(&out).Error
	})
	return out, err
}

func (r *SitterRepository) Update(ctx context.Context, s *domain.Sitter) error {
	return r.db.WithContext(ctx).Save(s).Error
}
