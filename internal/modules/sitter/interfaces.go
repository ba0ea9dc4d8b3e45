package sitter

import (
	"context"

	"pawcare/internal/domain"
)

type SitterRepository interface {
	Create(ctx context.Context, s *domain.Sitter) error
	GetByID(ctx context.Context, id string) (*domain.Sitter, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Sitter, error)
	ListAvailable(ctx context.Context) ([]domain.Sitter, error)
	Update(ctx context.Context, s *domain.Sitter) error
}
