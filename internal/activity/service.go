package activity

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

// ListResult carries an activity list plus a flag marking the fixed
// illustrative dataset served when the real list cannot be loaded.
type ListResult struct {
	Activities  []domain.Activity `json:"activities"`
	ExampleData bool              `json:"example_data,omitempty"`
}

// Service defines the atividade business logic
type Service interface {
	List(ctx context.Context, userID string) (ListResult, error)
	Get(ctx context.Context, userID, id string) (*domain.Activity, error)
	Create(ctx context.Context, userID string, activity *domain.Activity) error
	Update(ctx context.Context, userID string, activity *domain.Activity) error
	Complete(ctx context.Context, userID, id string) (*domain.Activity, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	repo  repository.Activity
	store *cache.Store
	now   func() time.Time
}

// NewService creates a new activity service
func NewService(repo repository.Activity, store *cache.Store) Service {
	return &service{repo: repo, store: store, now: time.Now}
}

// List returns the user's activities. When the repository fails, the
// user still gets a populated screen: a fixed example dataset flagged
// as such instead of an error page.
func (s *service) List(ctx context.Context, userID string) (ListResult, error) {
	res := s.store.Get(ctx, cache.ActivitiesKey(userID), cache.Options{TTL: listTTL}, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListByUser(ctx, userID)
	})
	if res.Err != nil {
		logger.FromContext(ctx).Warn("activity list unavailable, serving example data",
			"user_id", userID, "error", res.Err)
		return ListResult{Activities: ExampleActivities(userID, s.now()), ExampleData: true}, nil
	}

	activities, ok := res.Value.([]domain.Activity)
	if !ok {
		return ListResult{}, fmt.Errorf("unexpected cached activity list value")
	}
	return ListResult{Activities: activities}, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (*domain.Activity, error) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return activity, nil
}

func (s *service) Create(ctx context.Context, userID string, activity *domain.Activity) error {
	if strings.TrimSpace(activity.Tipo) == "" {
		return fmt.Errorf("%w: tipo is required", domain.ErrInvalidInput)
	}
	if activity.DataProgramada.IsZero() {
		return fmt.Errorf("%w: data_programada is required", domain.ErrInvalidInput)
	}

	activity.UserID = userID
	activity.Status = domain.NormalizeStatus(string(activity.Status))
	if activity.Status == domain.StatusUnknown {
		activity.Status = domain.StatusPending
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return err
	}

	s.store.Invalidate(cache.ActivitiesKey(userID))
	logger.FromContext(ctx).Info("activity created", "activity_id", activity.ID, "tipo", activity.Tipo)
	return nil
}

func (s *service) Update(ctx context.Context, userID string, activity *domain.Activity) error {
	if _, err := s.Get(ctx, userID, activity.ID); err != nil {
		return err
	}

	activity.UserID = userID
	activity.Status = domain.NormalizeStatus(string(activity.Status))

	if err := s.repo.Update(ctx, activity); err != nil {
		return err
	}

	s.store.Invalidate(cache.ActivitiesKey(userID))
	return nil
}

// Complete transitions an activity to its terminal state. The stored
// status is normalized before comparison so legacy spellings such as
// "Concluída" short-circuit instead of being completed twice.
func (s *service) Complete(ctx context.Context, userID, id string) (*domain.Activity, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if current.IsCompleted() {
		return nil, domain.ErrAlreadyCompleted
	}

	completedAt := s.now()
	activity, err := s.repo.UpdateStatus(ctx, id, domain.StatusCompleted, &completedAt)
	if err != nil {
		return nil, err
	}

	s.store.Invalidate(cache.ActivitiesKey(userID))
	logger.FromContext(ctx).Info("activity completed", "activity_id", id)
	return activity, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.store.Invalidate(cache.ActivitiesKey(userID))
	return nil
}
