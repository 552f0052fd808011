package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agrocampo/api/internal/domain"
	"github.com/agrocampo/api/internal/repository"
)

// Overview is the combined home-screen payload: the user's farms plus
// every plot across them.
type Overview struct {
	Farms []domain.Farm `json:"farms"`
	Plots []domain.Plot `json:"plots"`
}

// Service assembles the home-screen overview
type Service interface {
	Overview(ctx context.Context, userID string) (Overview, error)
}

type service struct {
	farms repository.Farm
	plots repository.Plot
}

// NewService creates a new dashboard service
func NewService(farms repository.Farm, plots repository.Plot) Service {
	return &service{farms: farms, plots: plots}
}

// Overview fetches farms and plots concurrently. Either failure fails
// the whole call: the screen renders complete or not at all.
func (s *service) Overview(ctx context.Context, userID string) (Overview, error) {
	var overview Overview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		farms, err := s.farms.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load farms: %w", err)
		}
		overview.Farms = farms
		return nil
	})
	g.Go(func() error {
		plots, err := s.plots.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load plots: %w", err)
		}
		overview.Plots = plots
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}
