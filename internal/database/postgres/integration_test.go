package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/agrocampo/api/internal/database"
	"github.com/agrocampo/api/internal/domain"
)

// setupTestDatabase starts a throwaway Postgres container and applies the
// embedded goose migrations, so the tests run against the real schema.
func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(15*time.Second)),
	)
	if err != nil {
		t.Skipf("Skipping integration test, could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, connStr))

	pool, err := database.NewPool(connStr, 10, 30*time.Minute, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestListingRepository_Integration(t *testing.T) {
	pool := setupTestDatabase(t)
	repo := NewListingRepository(pool)
	ctx := context.Background()

	seed := func(t *testing.T, titulo string) *domain.Listing {
		t.Helper()
		listing := &domain.Listing{
			Titulo:      titulo,
			Descricao:   "anúncio de teste",
			Preco:       120.50,
			Localizacao: "Uberlândia - MG",
			Telefone:    "34 99999-0000",
			UserID:      "user-1",
		}
		require.NoError(t, repo.Create(ctx, listing))
		return listing
	}

	t.Run("Create Fills Generated Fields", func(t *testing.T) {
		listing := seed(t, "Feijão Carioca")

		require.NotEmpty(t, listing.ID)
		assert.False(t, listing.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, "Feijão Carioca", got.Titulo)
		assert.Equal(t, 120.50, got.Preco)
	})

	t.Run("Partial Update Keeps Unset Fields", func(t *testing.T) {
		listing := seed(t, "Mandioca")

		newPreco := 99.90
		updated, err := repo.Update(ctx, listing.ID, domain.ListingUpdate{Preco: &newPreco})
		require.NoError(t, err)

		assert.Equal(t, 99.90, updated.Preco)
		assert.Equal(t, "Mandioca", updated.Titulo, "fields absent from the update must survive")
		assert.Equal(t, "Uberlândia - MG", updated.Localizacao)
	})

	t.Run("Update Missing Listing", func(t *testing.T) {
		titulo := "Fantasma"
		_, err := repo.Update(ctx, uuid.NewString(), domain.ListingUpdate{Titulo: &titulo})
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("DeleteByTitleMatch Is Case Insensitive", func(t *testing.T) {
		seed(t, "Milho Verde")
		seed(t, "Saco de milho")
		seed(t, "Trigo Orgânico")

		deleted, err := repo.DeleteByTitleMatch(ctx, "MILHO")
		require.NoError(t, err)
		assert.Len(t, deleted, 2)

		remaining, err := repo.List(ctx)
		require.NoError(t, err)
		for _, l := range remaining {
			assert.NotContains(t, l.Titulo, "ilho")
		}
	})

	t.Run("DeleteByTitleMatch Treats Wildcards As Literals", func(t *testing.T) {
		seed(t, "Promoção 100% natural")
		keep := seed(t, "Adubo 100kg")

		deleted, err := repo.DeleteByTitleMatch(ctx, "100%")
		require.NoError(t, err)
		require.Len(t, deleted, 1, "a percent sign in the query must not match everything containing \"100\"")
		assert.Equal(t, "Promoção 100% natural", deleted[0].Titulo)

		_, err = repo.GetByID(ctx, keep.ID)
		assert.NoError(t, err, "the listing without a literal percent stays")
	})
}

func TestActivityRepository_Integration(t *testing.T) {
	pool := setupTestDatabase(t)
	repo := NewActivityRepository(pool)
	ctx := context.Background()

	t.Run("Create And Complete", func(t *testing.T) {
		activity := &domain.Activity{
			UserID:         "user-1",
			Tipo:           "plantio",
			Descricao:      "plantio de milho",
			Status:         domain.StatusPending,
			DataProgramada: time.Now().Add(24 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, activity))
		require.NotEmpty(t, activity.ID)

		now := time.Now()
		updated, err := repo.UpdateStatus(ctx, activity.ID, domain.StatusCompleted, &now)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		require.NotNil(t, updated.DataConclusao)
		assert.WithinDuration(t, now, *updated.DataConclusao, time.Second)
	})

	t.Run("Legacy Status Spellings Fold On Scan", func(t *testing.T) {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO atividades (user_id, tipo, status, data_programada)
			VALUES ($1, $2, $3, NOW())
			RETURNING id
		`, "user-legacy", "colheita", "CONCLUIDA").Scan(&id)
		require.NoError(t, err)

		activity, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, activity.Status)
		assert.True(t, activity.IsCompleted())
	})

	t.Run("ListByUser Orders By Scheduled Date", func(t *testing.T) {
		base := time.Now()
		for i, tipo := range []string{"adubação", "irrigação"} {
			activity := &domain.Activity{
				UserID:         "user-order",
				Tipo:           tipo,
				Status:         domain.StatusPlanned,
				DataProgramada: base.Add(time.Duration(2-i) * time.Hour),
			}
			require.NoError(t, repo.Create(ctx, activity))
		}

		activities, err := repo.ListByUser(ctx, "user-order")
		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, "irrigação", activities[0].Tipo, "earliest scheduled activity comes first")
	})

	t.Run("GetByID Not Found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrActivityNotFound)
	})
}
