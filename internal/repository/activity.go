package repository

import (
	"context"
	"time"

	"github.com/agrocampo/api/internal/domain"
)

// Activity defines the data access interface for atividade operations
type Activity interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Activity, error)
	ListByPlot(ctx context.Context, plotID string) ([]domain.Activity, error)
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	Create(ctx context.Context, activity *domain.Activity) error
	Update(ctx context.Context, activity *domain.Activity) error
	UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus, completedAt *time.Time) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}
