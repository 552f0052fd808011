package repository

import (
	"context"

	"github.com/agrocampo/api/internal/domain"
)

// Plot defines the data access interface for talhão operations
type Plot interface {
	ListByFarm(ctx context.Context, farmID string) ([]domain.Plot, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Plot, error)
	GetByID(ctx context.Context, id string) (*domain.Plot, error)
	Create(ctx context.Context, plot *domain.Plot) error
	Update(ctx context.Context, id string, update domain.PlotUpdate) (*domain.Plot, error)
	Delete(ctx context.Context, id string) error
}
