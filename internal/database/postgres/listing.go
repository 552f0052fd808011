package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrocampo/api/internal/domain"
)

// ListingRepository implements the marketplace listing repository for PostgreSQL
type ListingRepository struct {
	db *pgxpool.Pool
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = "id, titulo, descricao, preco, localizacao, telefone, imagem_url, user_id, created_at, updated_at"

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var listing domain.Listing
	err := row.Scan(
		&listing.ID,
		&listing.Titulo,
		&listing.Descricao,
		&listing.Preco,
		&listing.Localizacao,
		&listing.Telefone,
		&listing.ImagemURL,
		&listing.UserID,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func collectListings(rows pgx.Rows) ([]domain.Listing, error) {
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, *listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return listings, nil
}

// List retrieves every active listing, newest first
func (r *ListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM marketplace_products
		ORDER BY created_at DESC
	`, listingColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	return collectListings(rows)
}

// ListByUser retrieves listings published by a single user
func (r *ListingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM marketplace_products
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, listingColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user listings: %w", err)
	}
	return collectListings(rows)
}

// GetByID retrieves a single listing
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM marketplace_products
		WHERE id = $1
	`, listingColumns)

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// Create inserts a new listing and fills the generated fields
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO marketplace_products (titulo, descricao, preco, localizacao, telefone, imagem_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		listing.Titulo,
		listing.Descricao,
		listing.Preco,
		listing.Localizacao,
		listing.Telefone,
		listing.ImagemURL,
		listing.UserID,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of the update and returns the new row
func (r *ListingRepository) Update(ctx context.Context, id string, update domain.ListingUpdate) (*domain.Listing, error) {
	query := fmt.Sprintf(`
		UPDATE marketplace_products SET
			titulo = COALESCE($2, titulo),
			descricao = COALESCE($3, descricao),
			preco = COALESCE($4, preco),
			localizacao = COALESCE($5, localizacao),
			telefone = COALESCE($6, telefone),
			imagem_url = COALESCE($7, imagem_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, listingColumns)

	listing, err := scanListing(r.db.QueryRow(ctx, query,
		id,
		update.Titulo,
		update.Descricao,
		update.Preco,
		update.Localizacao,
		update.Telefone,
		update.ImagemURL,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return listing, nil
}

// Delete removes a listing
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM marketplace_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE metacharacters in user-supplied
// search text so a query like "100%" matches the literal characters
// instead of acting as a wildcard.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// DeleteByTitleMatch removes every listing whose title contains the query,
// case-insensitively, returning the rows that were removed
func (r *ListingRepository) DeleteByTitleMatch(ctx context.Context, query string) ([]domain.Listing, error) {
	stmt := fmt.Sprintf(`
		DELETE FROM marketplace_products
		WHERE titulo ILIKE '%%' || $1 || '%%' ESCAPE '\'
		RETURNING %s
	`, listingColumns)

	rows, err := r.db.Query(ctx, stmt, escapeLikePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to delete listings by title: %w", err)
	}
	return collectListings(rows)
}
