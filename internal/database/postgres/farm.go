package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrocampo/api/internal/domain"
)

// FarmRepository implements the lavoura repository for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

const farmColumns = "id, nome, localizacao, area_total, unidade_area, user_id, created_at, updated_at"

func scanFarm(row pgx.Row) (*domain.Farm, error) {
	var farm domain.Farm
	err := row.Scan(
		&farm.ID,
		&farm.Nome,
		&farm.Localizacao,
		&farm.AreaTotal,
		&farm.UnidadeArea,
		&farm.UserID,
		&farm.CreatedAt,
		&farm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

// ListByUser retrieves all farms owned by a user, newest first
func (r *FarmRepository) ListByUser(ctx context.Context, userID string) ([]domain.Farm, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lavouras
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, farmColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query farms: %w", err)
	}
	defer rows.Close()

	var farms []domain.Farm
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farm: %w", err)
		}
		farms = append(farms, *farm)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return farms, nil
}

// GetByID retrieves a single farm
func (r *FarmRepository) GetByID(ctx context.Context, id string) (*domain.Farm, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lavouras
		WHERE id = $1
	`, farmColumns)

	farm, err := scanFarm(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	return farm, nil
}

// Create inserts a new farm and fills the generated fields
func (r *FarmRepository) Create(ctx context.Context, farm *domain.Farm) error {
	query := `
		INSERT INTO lavouras (nome, localizacao, area_total, unidade_area, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		farm.Nome,
		farm.Localizacao,
		farm.AreaTotal,
		farm.UnidadeArea,
		farm.UserID,
	).Scan(&farm.ID, &farm.CreatedAt, &farm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert farm: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of the update and returns the new row.
// COALESCE keeps the stored value for fields the caller left nil.
func (r *FarmRepository) Update(ctx context.Context, id string, update domain.FarmUpdate) (*domain.Farm, error) {
	query := fmt.Sprintf(`
		UPDATE lavouras SET
			nome = COALESCE($2, nome),
			localizacao = COALESCE($3, localizacao),
			area_total = COALESCE($4, area_total),
			unidade_area = COALESCE($5, unidade_area),
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, farmColumns)

	farm, err := scanFarm(r.db.QueryRow(ctx, query,
		id,
		update.Nome,
		update.Localizacao,
		update.AreaTotal,
		update.UnidadeArea,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update farm: %w", err)
	}
	return farm, nil
}

// Delete removes a farm. Plots cascade through the schema.
func (r *FarmRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lavouras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete farm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}
