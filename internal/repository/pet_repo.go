package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pawcare/internal/domain"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PetRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	var p domain.Pet
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	var out []domain.Pet
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("owner_id = ?", ownerID).
			Order("created_at ASC").
			Find(&out).Error
	})
	return out, err
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PetRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Pet{})
	return res.RowsAffected == 1, res.Error
}

// ListVaccinationsDue returns pets whose vaccination falls due on or
// before the cutoff date. Feeds the reminder job.
func (r *PetRepository) ListVaccinationsDue(ctx context.Context, cutoff time.Time) ([]domain.Pet, error) {
	var out []domain.Pet
	err := retryRead(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("vaccination_due_date IS NOT NULL AND vaccination_due_date <= ?", cutoff).
			Order("vaccination_due_date ASC").
			Find(&out).Error
	})
	return out, err
}
