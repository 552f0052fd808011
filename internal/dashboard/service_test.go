package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/domain"
)

type stubFarms struct {
	farms []domain.Farm
	err   error
}

func (s *stubFarms) ListByUser(ctx context.Context, userID string) ([]domain.Farm, error) {
	return s.farms, s.err
}
func (s *stubFarms) GetByID(ctx context.Context, id string) (*domain.Farm, error) { return nil, nil }
func (s *stubFarms) Create(ctx context.Context, farm *domain.Farm) error          { return nil }
func (s *stubFarms) Update(ctx context.Context, id string, update domain.FarmUpdate) (*domain.Farm, error) {
	return nil, nil
}
func (s *stubFarms) Delete(ctx context.Context, id string) error { return nil }

type stubPlots struct {
	plots []domain.Plot
	err   error
}

func (s *stubPlots) ListByFarm(ctx context.Context, farmID string) ([]domain.Plot, error) {
	return nil, nil
}
func (s *stubPlots) ListByUser(ctx context.Context, userID string) ([]domain.Plot, error) {
	return s.plots, s.err
}
func (s *stubPlots) GetByID(ctx context.Context, id string) (*domain.Plot, error) { return nil, nil }
func (s *stubPlots) Create(ctx context.Context, plot *domain.Plot) error          { return nil }
func (s *stubPlots) Update(ctx context.Context, id string, update domain.PlotUpdate) (*domain.Plot, error) {
	return nil, nil
}
func (s *stubPlots) Delete(ctx context.Context, id string) error { return nil }

func TestOverview(t *testing.T) {
	t.Run("both sources load", func(t *testing.T) {
		svc := NewService(
			&stubFarms{farms: []domain.Farm{{ID: "farm-1"}}},
			&stubPlots{plots: []domain.Plot{{ID: "plot-1"}, {ID: "plot-2"}}},
		)

		overview, err := svc.Overview(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Len(t, overview.Farms, 1)
		assert.Len(t, overview.Plots, 2)
	})

	t.Run("farm failure fails the whole overview", func(t *testing.T) {
		svc := NewService(
			&stubFarms{err: errors.New("farms down")},
			&stubPlots{plots: []domain.Plot{{ID: "plot-1"}}},
		)

		overview, err := svc.Overview(context.Background(), "user-1")
		require.Error(t, err)
		assert.Empty(t, overview.Plots, "no partial rendering")
	})

	t.Run("plot failure fails the whole overview", func(t *testing.T) {
		svc := NewService(
			&stubFarms{farms: []domain.Farm{{ID: "farm-1"}}},
			&stubPlots{err: errors.New("plots down")},
		)

		_, err := svc.Overview(context.Background(), "user-1")
		require.Error(t, err)
	})
}
