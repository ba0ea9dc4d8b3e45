package pet

import (
	"context"
	"time"

	"pawcare/internal/domain"
)

type PetRepository interface {
	Create(ctx context.Context, p *domain.Pet) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	ListVaccinationsDue(ctx context.Context, cutoff time.Time) ([]domain.Pet, error)
}
