package listing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrocampo/api/internal/cache"
	"github.com/agrocampo/api/internal/domain"
)

type fakeListingRepo struct {
	listings map[string]*domain.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*domain.Listing)}
}

func (f *fakeListingRepo) List(ctx context.Context) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeListingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	listing.ID = "listing-" + listing.Titulo
	f.listings[listing.ID] = listing
	return nil
}

func (f *fakeListingRepo) Update(ctx context.Context, id string, update domain.ListingUpdate) (*domain.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	if update.Titulo != nil {
		l.Titulo = *update.Titulo
	}
	if update.Preco != nil {
		l.Preco = *update.Preco
	}
	copied := *l
	return &copied, nil
}

func (f *fakeListingRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(f.listings, id)
	return nil
}

func (f *fakeListingRepo) DeleteByTitleMatch(ctx context.Context, query string) ([]domain.Listing, error) {
	var deleted []domain.Listing
	for id, l := range f.listings {
		if strings.Contains(strings.ToLower(l.Titulo), strings.ToLower(query)) {
			deleted = append(deleted, *l)
			delete(f.listings, id)
		}
	}
	return deleted, nil
}

func seedListings(repo *fakeListingRepo) {
	repo.listings["l1"] = &domain.Listing{ID: "l1", Titulo: "Milho saco 60kg", Telefone: "(34) 99888-7766", UserID: "user-1"}
	repo.listings["l2"] = &domain.Listing{ID: "l2", Titulo: "MILHO verde", UserID: "user-1"}
	repo.listings["l3"] = &domain.Listing{ID: "l3", Titulo: "Soja em grão", UserID: "user-2"}
}

func TestBulkDelete(t *testing.T) {
	t.Run("zero matches is a not-found error", func(t *testing.T) {
		repo := newFakeListingRepo()
		seedListings(repo)
		svc := NewService(repo, cache.NewStore())

		_, err := svc.BulkDelete(context.Background(), "trator")
		assert.ErrorIs(t, err, domain.ErrNoListingsMatched)
	})

	t.Run("case-insensitive substring match returns count", func(t *testing.T) {
		repo := newFakeListingRepo()
		seedListings(repo)
		svc := NewService(repo, cache.NewStore())

		result, err := svc.BulkDelete(context.Background(), "milho")
		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
		assert.Len(t, result.Deleted, 2)
		assert.Len(t, repo.listings, 1, "only the soja listing remains")
	})

	t.Run("empty query rejected", func(t *testing.T) {
		svc := NewService(newFakeListingRepo(), cache.NewStore())
		_, err := svc.BulkDelete(context.Background(), "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestWhatsAppLink(t *testing.T) {
	repo := newFakeListingRepo()
	seedListings(repo)
	svc := NewService(repo, cache.NewStore())

	link, err := svc.WhatsAppLink(context.Background(), "l1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/34998887766?text="), link)
	assert.Contains(t, link, "Milho+saco+60kg")

	t.Run("listing without phone", func(t *testing.T) {
		_, err := svc.WhatsAppLink(context.Background(), "l2")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown listing", func(t *testing.T) {
		_, err := svc.WhatsAppLink(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})
}

func TestCreateAndOwnership(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewService(repo, cache.NewStore())
	ctx := context.Background()

	err := svc.Create(ctx, "user-1", &domain.Listing{Preco: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "title is required")

	err = svc.Create(ctx, "user-1", &domain.Listing{Titulo: "Feijão", Preco: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative price rejected")

	listing := &domain.Listing{Titulo: "Feijão carioca", Preco: 250}
	require.NoError(t, svc.Create(ctx, "user-1", listing))
	assert.Equal(t, "user-1", listing.UserID)

	_, err = svc.Update(ctx, "user-2", listing.ID, domain.ListingUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.Delete(ctx, "user-2", listing.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, "user-1", listing.ID))
}
