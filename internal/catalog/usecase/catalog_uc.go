package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

// CatalogCache is an optional read cache for the full listing collection.
// Get returns (nil, nil) on a miss.
type CatalogCache interface {
	Get(ctx context.Context) ([]*domain.Listing, error)
	Set(ctx context.Context, listings []*domain.Listing) error
	Invalidate(ctx context.Context) error
}

// CatalogUsecase holds the in-memory listing collection for the session and
// answers filter/search queries against it.
type CatalogUsecase struct {
	store  domain.ListingStore
	cache  CatalogCache
	logger *zap.Logger

	mu       sync.RWMutex
	listings []*domain.Listing
	loaded   bool
}

func NewCatalogUsecase(store domain.ListingStore, cache CatalogCache, log *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

// Refresh replaces the in-memory catalog with a full newest-first fetch from
// the listing store. On failure the current catalog is left untouched.
func (uc *CatalogUsecase) Refresh(ctx context.Context) error {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx)
		if err != nil {
			uc.logger.Warn("catalog cache read failed, falling back to store", zap.Error(err))
		} else if cached != nil {
			uc.logger.Debug("catalog refreshed from cache", zap.Int("count", len(cached)))
			uc.replace(cached)
			return nil
		}
	}

	listings, err := uc.store.ListAllNewestFirst(ctx)
	if err != nil {
		uc.logger.Error("catalog refresh failed", zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	uc.replace(listings)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, listings); err != nil {
			uc.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	uc.logger.Info("catalog refreshed", zap.Int("count", len(listings)))
	return nil
}

func (uc *CatalogUsecase) replace(listings []*domain.Listing) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listings = listings
	uc.loaded = true
}

// Loaded reports whether an initial fetch has completed. Until then a query
// result must be presented as "loading", not as an empty catalog.
func (uc *CatalogUsecase) Loaded() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.loaded
}

// Filter returns the listings matching the search term and category, in the
// catalog's newest-first order. The second result mirrors Loaded.
func (uc *CatalogUsecase) Filter(term string, category domain.Category) ([]*domain.Listing, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	results := make([]*domain.Listing, 0, len(uc.listings))
	for _, l := range uc.listings {
		if l == nil {
			continue
		}
		if matches(l, term, category) {
			results = append(results, l)
		}
	}
	return results, uc.loaded
}

// Get returns the listing with the given id from the in-memory catalog.
func (uc *CatalogUsecase) Get(id string) (*domain.Listing, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, l := range uc.listings {
		if l != nil && l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// matches applies the two visibility rules: the term must be a
// case-insensitive substring of title or description (empty term matches
// everything), and the category must equal the listing's unless it is All.
func matches(l *domain.Listing, term string, category domain.Category) bool {
	if category != domain.CategoryAll && l.Category != category {
		return false
	}
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.Title), t) ||
		strings.Contains(strings.ToLower(l.Description), t)
}
