package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

// Publisher emits domain events after a successful post.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Notifier sends the "your listing is live" confirmation.
type Notifier interface {
	ListingPosted(title string) error
}

// PostUsecase runs the create-listing workflow: validate the draft, upload
// the image if any, write the record, then refresh the catalog. The two
// network calls are strictly sequential; a second submission while one is in
// flight is rejected.
type PostUsecase struct {
	store          domain.ListingStore
	blob           domain.BlobStore
	catalog        *CatalogUsecase
	publisher      Publisher
	notifier       Notifier
	createdCounter prometheus.Counter
	placeholderURL string
	logger         *zap.Logger

	inFlight atomic.Bool
}

func NewPostUsecase(
	store domain.ListingStore,
	blob domain.BlobStore,
	catalog *CatalogUsecase,
	publisher Publisher,
	notifier Notifier,
	createdCounter prometheus.Counter,
	placeholderURL string,
	log *zap.Logger,
) *PostUsecase {
	return &PostUsecase{
		store:          store,
		blob:           blob,
		catalog:        catalog,
		publisher:      publisher,
		notifier:       notifier,
		createdCounter: createdCounter,
		placeholderURL: placeholderURL,
		logger:         log,
	}
}

// Post submits a draft. It returns the stored listing on success. On any
// failure no partial listing is observable: validation happens before any
// network call and the record write is attempted only after the upload
// succeeded. The caller keeps the draft for retry on error.
func (uc *PostUsecase) Post(ctx context.Context, draft domain.Draft) (*domain.Listing, error) {
	if !uc.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrPostInFlight
	}
	defer uc.inFlight.Store(false)

	price, err := validateDraft(draft)
	if err != nil {
		uc.logger.Info("draft rejected", zap.String("title", draft.Title), zap.Error(err))
		return nil, err
	}

	imageURL := uc.placeholderURL
	if len(draft.ImageData) > 0 {
		url, err := uc.blob.Upload(ctx, draft.ImageName, draft.ImageData)
		if err != nil {
			uc.logger.Error("image upload failed", zap.String("file", draft.ImageName), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrBlobUnavailable, err)
		}
		imageURL = url
	}

	listing := &domain.Listing{
		Title:       strings.TrimSpace(draft.Title),
		Price:       price,
		Category:    draft.Category,
		Condition:   draft.Condition,
		Seller:      domain.SellerSelf,
		Location:    strings.TrimSpace(draft.Location),
		Description: draft.Description,
		ImageURL:    imageURL,
		PostedDate:  domain.PostedJustNow,
	}

	created, err := uc.store.Create(ctx, listing)
	if err != nil {
		uc.logger.Error("listing create failed", zap.String("title", listing.Title), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	uc.logger.Info("listing created",
		zap.String("listing_id", created.ID),
		zap.String("title", created.Title),
		zap.String("category", string(created.Category)))

	uc.afterCreate(ctx, created)
	return created, nil
}

// afterCreate runs the non-fatal post-success side effects. Failures here are
// logged and never surfaced to the user; the listing already exists.
func (uc *PostUsecase) afterCreate(ctx context.Context, created *domain.Listing) {
	if uc.createdCounter != nil {
		uc.createdCounter.Inc()
	}

	if uc.publisher != nil {
		event := map[string]string{
			"id":       created.ID,
			"title":    created.Title,
			"category": string(created.Category),
		}
		if err := uc.publisher.Publish(ctx, "listing.created", event); err != nil {
			uc.logger.Warn("listing.created publish failed", zap.String("listing_id", created.ID), zap.Error(err))
		}
	}

	if uc.notifier != nil {
		if err := uc.notifier.ListingPosted(created.Title); err != nil {
			uc.logger.Warn("post confirmation mail failed", zap.String("listing_id", created.ID), zap.Error(err))
		}
	}

	if uc.catalog.cache != nil {
		if err := uc.catalog.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}
	if err := uc.catalog.Refresh(ctx); err != nil {
		uc.logger.Warn("catalog refresh after create failed", zap.Error(err))
	}
}

// validateDraft checks the required fields and parses the price. It returns
// the parsed price or a *domain.ValidationError.
func validateDraft(d domain.Draft) (float64, error) {
	if strings.TrimSpace(d.Title) == "" {
		return 0, &domain.ValidationError{Field: "title", Reason: "required"}
	}
	rawPrice := strings.TrimSpace(d.Price)
	if rawPrice == "" {
		return 0, &domain.ValidationError{Field: "price", Reason: "required"}
	}
	if strings.TrimSpace(d.Location) == "" {
		return 0, &domain.ValidationError{Field: "location", Reason: "required"}
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "price", Reason: "not a number"}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, &domain.ValidationError{Field: "price", Reason: "must be non-negative"}
	}
	if !d.Category.Valid() {
		return 0, &domain.ValidationError{Field: "category", Reason: "unknown category"}
	}
	if !d.Condition.Valid() {
		return 0, &domain.ValidationError{Field: "condition", Reason: "unknown condition"}
	}
	return price, nil
}
