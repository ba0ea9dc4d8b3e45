package sitter

import (
	"context"

	"pawcare/internal/domain"
)

type Service struct {
	sitters SitterRepository
}

func NewService(sitters SitterRepository) *Service {
	return &Service{sitters: sitters}
}

// CreateProfile sets up the provider-side profile for a sitter user.
// One profile per user.
func (s *Service) CreateProfile(ctx context.Context, userID string, req UpsertProfileRequest) (*domain.Sitter, error) {
	if req.HourlyRate <= 0 {
		return nil, ErrValidation
	}

	existing, err := s.sitters.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	profile := &domain.Sitter{
		UserID:          userID,
		Bio:             req.Bio,
		HourlyRate:      req.HourlyRate,
		ExperienceYears: req.ExperienceYears,
		Services:        req.Services,
		Available:       true,
	}
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := s.sitters.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile changes the sitter's rate and details. Existing bookings
// keep the total computed from the rate at their creation time.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpsertProfileRequest) (*domain.Sitter, error) {
	if req.HourlyRate <= 0 {
		return nil, ErrValidation
	}

	profile, err := s.sitters.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	profile.Bio = req.Bio
	profile.HourlyRate = req.HourlyRate
	profile.ExperienceYears = req.ExperienceYears
	profile.Services = req.Services
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if err := s.sitters.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Sitter, error) {
	profile, err := s.sitters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

func (s *Service) GetMine(ctx context.Context, userID string) (*domain.Sitter, error) {
	profile, err := s.sitters.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]domain.Sitter, error) {
	return s.sitters.ListAvailable(ctx)
}
