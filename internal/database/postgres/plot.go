package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrocampo/api/internal/domain"
)

// PlotRepository implements the talhão repository for PostgreSQL
type PlotRepository struct {
	db *pgxpool.Pool
}

// NewPlotRepository creates a new PlotRepository
func NewPlotRepository(db *pgxpool.Pool) *PlotRepository {
	return &PlotRepository{db: db}
}

const plotColumns = "id, lavoura_id, nome, cultura, fase_crescimento, status, area, data_plantio, previsao_colheita, created_at, updated_at"

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var plot domain.Plot
	err := row.Scan(
		&plot.ID,
		&plot.LavouraID,
		&plot.Nome,
		&plot.Cultura,
		&plot.FaseCrescimento,
		&plot.Status,
		&plot.Area,
		&plot.DataPlantio,
		&plot.PrevisaoColheita,
		&plot.CreatedAt,
		&plot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plot, nil
}

func collectPlots(rows pgx.Rows) ([]domain.Plot, error) {
	defer rows.Close()

	var plots []domain.Plot
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot: %w", err)
		}
		plots = append(plots, *plot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return plots, nil
}

// ListByFarm retrieves all plots belonging to a farm
func (r *PlotRepository) ListByFarm(ctx context.Context, farmID string) ([]domain.Plot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM talhoes
		WHERE lavoura_id = $1
		ORDER BY created_at DESC
	`, plotColumns)

	rows, err := r.db.Query(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plots: %w", err)
	}
	return collectPlots(rows)
}

// ListByUser retrieves all plots across every farm the user owns
func (r *PlotRepository) ListByUser(ctx context.Context, userID string) ([]domain.Plot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM talhoes t
		WHERE EXISTS (
			SELECT 1 FROM lavouras l WHERE l.id = t.lavoura_id AND l.user_id = $1
		)
		ORDER BY t.created_at DESC
	`, plotColumnsQualified())

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user plots: %w", err)
	}
	return collectPlots(rows)
}

func plotColumnsQualified() string {
	return "t.id, t.lavoura_id, t.nome, t.cultura, t.fase_crescimento, t.status, t.area, t.data_plantio, t.previsao_colheita, t.created_at, t.updated_at"
}

// GetByID retrieves a single plot
func (r *PlotRepository) GetByID(ctx context.Context, id string) (*domain.Plot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM talhoes
		WHERE id = $1
	`, plotColumns)

	plot, err := scanPlot(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plot: %w", err)
	}
	return plot, nil
}

// Create inserts a new plot. A missing parent farm surfaces as
// domain.ErrFarmRequired via the foreign key violation.
func (r *PlotRepository) Create(ctx context.Context, plot *domain.Plot) error {
	query := `
		INSERT INTO talhoes (lavoura_id, nome, cultura, fase_crescimento, status, area, data_plantio, previsao_colheita)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		plot.LavouraID,
		plot.Nome,
		plot.Cultura,
		plot.FaseCrescimento,
		plot.Status,
		plot.Area,
		plot.DataPlantio,
		plot.PrevisaoColheita,
	).Scan(&plot.ID, &plot.CreatedAt, &plot.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeForeignKeyViolation {
		return domain.ErrFarmRequired
	}
	if err != nil {
		return fmt.Errorf("failed to insert plot: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of the update and returns the new row
func (r *PlotRepository) Update(ctx context.Context, id string, update domain.PlotUpdate) (*domain.Plot, error) {
	query := fmt.Sprintf(`
		UPDATE talhoes SET
			nome = COALESCE($2, nome),
			cultura = COALESCE($3, cultura),
			fase_crescimento = COALESCE($4, fase_crescimento),
			status = COALESCE($5, status),
			area = COALESCE($6, area),
			data_plantio = COALESCE($7, data_plantio),
			previsao_colheita = COALESCE($8, previsao_colheita),
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, plotColumns)

	plot, err := scanPlot(r.db.QueryRow(ctx, query,
		id,
		update.Nome,
		update.Cultura,
		update.FaseCrescimento,
		update.Status,
		update.Area,
		update.DataPlantio,
		update.PrevisaoColheita,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update plot: %w", err)
	}
	return plot, nil
}

// Delete removes a plot
func (r *PlotRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM talhoes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}
