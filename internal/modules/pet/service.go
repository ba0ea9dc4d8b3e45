package pet

import (
	"context"
	"time"

	"pawcare/internal/domain"
)

const dateLayout = "2006-01-02"

type Service struct {
	pets PetRepository
}

func NewService(pets PetRepository) *Service {
	return &Service{pets: pets}
}

func (s *Service) Create(ctx context.Context, ownerID string, req UpsertPetRequest) (*domain.Pet, error) {
	p := &domain.Pet{
		OwnerID: ownerID,
		Name:    req.Name,
		Type:    req.Type,
		Breed:   req.Breed,
		Age:     req.Age,
	}
	if err := applyVaccination(p, req); err != nil {
		return nil, err
	}

	if err := s.pets.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, ownerID, petID string, req UpsertPetRequest) (*domain.Pet, error) {
	p, err := s.getOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Type = req.Type
	p.Breed = req.Breed
	p.Age = req.Age
	if err := applyVaccination(p, req); err != nil {
		return nil, err
	}

	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, ownerID, petID string) (*domain.Pet, error) {
	return s.getOwned(ctx, ownerID, petID)
}

func (s *Service) ListMine(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	return s.pets.ListByOwner(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, ownerID, petID string) error {
	ok, err := s.pets.Delete(ctx, petID, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, petID string) (*domain.Pet, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}

// applyVaccination derives the due date from the last vaccination plus
// the interval. The reminder job keys off VaccinationDueDate.
func applyVaccination(p *domain.Pet, req UpsertPetRequest) error {
	if req.LastVaccinationDate == "" {
		p.LastVaccinationDate = nil
		p.VaccinationIntervalDays = req.VaccinationIntervalDays
		p.VaccinationDueDate = nil
		return nil
	}

	last, err := time.Parse(dateLayout, req.LastVaccinationDate)
	if err != nil {
		return ErrValidation
	}
	p.LastVaccinationDate = &last
	p.VaccinationIntervalDays = req.VaccinationIntervalDays

	if req.VaccinationIntervalDays != nil && *req.VaccinationIntervalDays > 0 {
		due := last.AddDate(0, 0, *req.VaccinationIntervalDays)
		p.VaccinationDueDate = &due
	} else {
		p.VaccinationDueDate = nil
	}
	return nil
}
