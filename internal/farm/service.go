package farm

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

// listTTL bounds how long a cached farm list is served without a refetch.
// Mutations invalidate immediately, so this only covers external writes.
const listTTL = 5 * time.Minute

// Service defines the lavoura business logic
type Service interface {
	List(ctx context.Context, userID string) ([]domain.Farm, error)
	Get(ctx context.Context, userID, id string) (*domain.Farm, error)
	Create(ctx context.Context, userID string, farm *domain.Farm) error
	Update(ctx context.Context, userID, id string, update domain.FarmUpdate) (*domain.Farm, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	repo  repository.Farm
	store *cache.Store
}

// NewService creates a new farm service
func NewService(repo repository.Farm, store *cache.Store) Service {
	return &service{repo: repo, store: store}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Farm, error) {
	res := s.store.Get(ctx, cache.FarmsKey(userID), cache.Options{TTL: listTTL}, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListByUser(ctx, userID)
	})
	if res.Err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", res.Err)
	}

	farms, ok := res.Value.([]domain.Farm)
	if !ok {
		return nil, fmt.Errorf("unexpected cached farm list value")
	}
	return farms, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (*domain.Farm, error) {
	farm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farm.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return farm, nil
}

func (s *service) Create(ctx context.Context, userID string, farm *domain.Farm) error {
	if strings.TrimSpace(farm.Nome) == "" || strings.TrimSpace(farm.Localizacao) == "" {
		return fmt.Errorf("%w: nome and localizacao are required", domain.ErrInvalidInput)
	}
	if farm.UnidadeArea == "" {
		farm.UnidadeArea = "hectares"
	}
	farm.UserID = userID

	if err := s.repo.Create(ctx, farm); err != nil {
		return err
	}

	s.store.Invalidate(cache.FarmsKey(userID))
	logger.FromContext(ctx).Info("farm created", "farm_id", farm.ID, "user_id", userID)
	return nil
}

func (s *service) Update(ctx context.Context, userID, id string, update domain.FarmUpdate) (*domain.Farm, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	farm, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.store.Invalidate(cache.FarmsKey(userID))
	return farm, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.store.Invalidate(cache.FarmsKey(userID))
	s.store.InvalidateResource(cache.ResourcePlots)
	logger.FromContext(ctx).Info("farm deleted", "farm_id", id, "user_id", userID)
	return nil
}
