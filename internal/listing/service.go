package listing

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

// BulkDeleteResult reports the outcome of a title-match deletion.
type BulkDeleteResult struct {
	Count   int              `json:"count"`
	Deleted []domain.Listing `json:"deleted"`
}

// Service defines the marketplace listing business logic
type Service interface {
	List(ctx context.Context) ([]domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	Create(ctx context.Context, userID string, listing *domain.Listing) error
	Update(ctx context.Context, userID, id string, update domain.ListingUpdate) (*domain.Listing, error)
	Delete(ctx context.Context, userID, id string) error

	// BulkDelete removes every listing whose title contains the query,
	// case-insensitively. Zero matches is domain.ErrNoListingsMatched.
	BulkDelete(ctx context.Context, query string) (BulkDeleteResult, error)

	// WhatsAppLink builds the contact deep link for a listing.
	WhatsAppLink(ctx context.Context, id string) (string, error)
}

type service struct {
	repo  repository.Listing
	store *cache.Store
}

// NewService creates a new listing service
func NewService(repo repository.Listing, store *cache.Store) Service {
	return &service{repo: repo, store: store}
}

func (s *service) List(ctx context.Context) ([]domain.Listing, error) {
	res := s.store.Get(ctx, cache.ListingsKey(), cache.Options{TTL: listTTL}, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx)
	})
	if res.Err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", res.Err)
	}

	listings, ok := res.Value.([]domain.Listing)
	if !ok {
		return nil, fmt.Errorf("unexpected cached listing value")
	}
	return listings, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, userID string, listing *domain.Listing) error {
	if strings.TrimSpace(listing.Titulo) == "" {
		return fmt.Errorf("%w: titulo is required", domain.ErrInvalidInput)
	}
	if listing.Preco < 0 {
		return fmt.Errorf("%w: preco must not be negative", domain.ErrInvalidInput)
	}
	listing.UserID = userID

	if err := s.repo.Create(ctx, listing); err != nil {
		return err
	}

	s.store.Invalidate(cache.ListingsKey())
	logger.FromContext(ctx).Info("listing created", "listing_id", listing.ID, "titulo", listing.Titulo)
	return nil
}

func (s *service) Update(ctx context.Context, userID, id string, update domain.ListingUpdate) (*domain.Listing, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	listing, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.store.Invalidate(cache.ListingsKey())
	return listing, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.store.Invalidate(cache.ListingsKey())
	return nil
}

func (s *service) BulkDelete(ctx context.Context, query string) (BulkDeleteResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return BulkDeleteResult{}, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}

	deleted, err := s.repo.DeleteByTitleMatch(ctx, query)
	if err != nil {
		return BulkDeleteResult{}, err
	}
	if len(deleted) == 0 {
		return BulkDeleteResult{}, domain.ErrNoListingsMatched
	}

	s.store.Invalidate(cache.ListingsKey())
	logger.FromContext(ctx).Info("listings bulk deleted", "query", query, "count", len(deleted))
	return BulkDeleteResult{Count: len(deleted), Deleted: deleted}, nil
}

func (s *service) WhatsAppLink(ctx context.Context, id string) (string, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildWhatsAppLink(listing)
}
