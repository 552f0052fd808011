package repository

import (
	"context"

	"github.com/agrocampo/api/internal/domain"
)

// Listing defines the data access interface for marketplace listings
type Listing interface {
	List(ctx context.Context) ([]domain.Listing, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, id string, update domain.ListingUpdate) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error

	// DeleteByTitleMatch removes every listing whose title contains the
	// query, case-insensitively. Returns the deleted listings.
	DeleteByTitleMatch(ctx context.Context, query string) ([]domain.Listing, error)
}
