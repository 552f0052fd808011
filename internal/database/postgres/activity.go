package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrocampo/api/internal/domain"
)

// ActivityRepository implements the atividade repository for PostgreSQL
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = "id, user_id, talhao_id, tipo, descricao, status, data_programada, data_conclusao, created_at, updated_at"

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var activity domain.Activity
	var talhaoID *string
	var rawStatus string
	err := row.Scan(
		&activity.ID,
		&activity.UserID,
		&talhaoID,
		&activity.Tipo,
		&activity.Descricao,
		&rawStatus,
		&activity.DataProgramada,
		&activity.DataConclusao,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if talhaoID != nil {
		activity.TalhaoID = *talhaoID
	}
	// Stored statuses may predate normalization; fold on the way out.
	activity.Status = domain.NormalizeStatus(rawStatus)
	return &activity, nil
}

func collectActivities(rows pgx.Rows) ([]domain.Activity, error) {
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return activities, nil
}

// nullableID maps an empty string to NULL for optional UUID columns
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// ListByUser retrieves all activities for a user ordered by scheduled date
func (r *ActivityRepository) ListByUser(ctx context.Context, userID string) ([]domain.Activity, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM atividades
		WHERE user_id = $1
		ORDER BY data_programada ASC
	`, activityColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	return collectActivities(rows)
}

// ListByPlot retrieves all activities scheduled against a plot
func (r *ActivityRepository) ListByPlot(ctx context.Context, plotID string) ([]domain.Activity, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM atividades
		WHERE talhao_id = $1
		ORDER BY data_programada ASC
	`, activityColumns)

	rows, err := r.db.Query(ctx, query, plotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plot activities: %w", err)
	}
	return collectActivities(rows)
}

// GetByID retrieves a single activity
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM atividades
		WHERE id = $1
	`, activityColumns)

	activity, err := scanActivity(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// Create inserts a new activity and fills the generated fields
func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO atividades (user_id, talhao_id, tipo, descricao, status, data_programada, data_conclusao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		activity.UserID,
		nullableID(activity.TalhaoID),
		activity.Tipo,
		activity.Descricao,
		string(activity.Status),
		activity.DataProgramada,
		activity.DataConclusao,
	).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of an activity
func (r *ActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE atividades SET
			talhao_id = $2,
			tipo = $3,
			descricao = $4,
			status = $5,
			data_programada = $6,
			data_conclusao = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		activity.ID,
		nullableID(activity.TalhaoID),
		activity.Tipo,
		activity.Descricao,
		string(activity.Status),
		activity.DataProgramada,
		activity.DataConclusao,
	).Scan(&activity.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrActivityNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// UpdateStatus transitions an activity to a new status and returns the new row
func (r *ActivityRepository) UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus, completedAt *time.Time) (*domain.Activity, error) {
	query := fmt.Sprintf(`
		UPDATE atividades SET
			status = $2,
			data_conclusao = $3,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, activityColumns)

	activity, err := scanActivity(r.db.QueryRow(ctx, query, id, string(status), completedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update activity status: %w", err)
	}
	return activity, nil
}

// Delete removes an activity
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM atividades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}
