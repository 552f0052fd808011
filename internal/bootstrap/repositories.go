package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrocampo/api/internal/database/postgres"
	"github.com/agrocampo/api/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Farm     repository.Farm
	Plot     repository.Plot
	Activity repository.Activity
	Listing  repository.Listing
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Farm:     postgres.NewFarmRepository(dbPool),
		Plot:     postgres.NewPlotRepository(dbPool),
		Activity: postgres.NewActivityRepository(dbPool),
		Listing:  postgres.NewListingRepository(dbPool),
	}
}
