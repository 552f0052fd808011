package plot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agrocampo/api/internal/cache"
	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/repository"
)

const listTTL = 5 * time.Minute

// Service defines the talhão business logic
type Service interface {
	ListByFarm(ctx context.Context, userID, farmID string) ([]domain.Plot, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Plot, error)
	Get(ctx context.Context, userID, id string) (*domain.Plot, error)
	Create(ctx context.Context, userID string, plot *domain.Plot) error
	Update(ctx context.Context, userID, id string, update domain.PlotUpdate) (*domain.Plot, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	repo     repository.Plot
	farmRepo repository.Farm
	store    *cache.Store
}

// NewService creates a new plot service
func NewService(repo repository.Plot, farmRepo repository.Farm, store *cache.Store) Service {
	return &service{repo: repo, farmRepo: farmRepo, store: store}
}

// ownsFarm verifies the farm exists and belongs to the user
func (s *service) ownsFarm(ctx context.Context, userID, farmID string) error {
	farm, err := s.farmRepo.GetByID(ctx, farmID)
	if err != nil {
		return err
	}
	if farm.UserID != userID {
		return domain.ErrNotOwner
	}
	return nil
}

func (s *service) ListByFarm(ctx context.Context, userID, farmID string) ([]domain.Plot, error) {
	if err := s.ownsFarm(ctx, userID, farmID); err != nil {
		return nil, err
	}

	res := s.store.Get(ctx, cache.PlotsKey(farmID), cache.Options{TTL: listTTL}, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListByFarm(ctx, farmID)
	})
	if res.Err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", res.Err)
	}

	plots, ok := res.Value.([]domain.Plot)
	if !ok {
		return nil, fmt.Errorf("unexpected cached plot list value")
	}
	return plots, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Plot, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id string) (*domain.Plot, error) {
	plot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ownsFarm(ctx, userID, plot.LavouraID); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *service) Create(ctx context.Context, userID string, plot *domain.Plot) error {
	if strings.TrimSpace(plot.Nome) == "" || strings.TrimSpace(plot.Cultura) == "" {
		return fmt.Errorf("%w: nome and cultura are required", domain.ErrInvalidInput)
	}
	if plot.LavouraID == "" {
		return domain.ErrFarmRequired
	}
	if err := s.ownsFarm(ctx, userID, plot.LavouraID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, plot); err != nil {
		return err
	}

	s.store.Invalidate(cache.PlotsKey(plot.LavouraID))
	logger.FromContext(ctx).Info("plot created", "plot_id", plot.ID, "farm_id", plot.LavouraID)
	return nil
}

func (s *service) Update(ctx context.Context, userID, id string, update domain.PlotUpdate) (*domain.Plot, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	plot, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.store.Invalidate(cache.PlotsKey(current.LavouraID))
	return plot, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.store.Invalidate(cache.PlotsKey(current.LavouraID))
	logger.FromContext(ctx).Info("plot deleted", "plot_id", id, "farm_id", current.LavouraID)
	return nil
}
