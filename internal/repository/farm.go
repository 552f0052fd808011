package repository

import (
	"context"

	"github.com/agrocampo/api/internal/domain"
)

// Farm defines the data access interface for lavoura operations
type Farm interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Farm, error)
	GetByID(ctx context.Context, id string) (*domain.Farm, error)
	Create(ctx context.Context, farm *domain.Farm) error
	Update(ctx context.Context, id string, update domain.FarmUpdate) (*domain.Farm, error)
	Delete(ctx context.Context, id string) error
}
