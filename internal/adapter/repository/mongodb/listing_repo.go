package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

// ListingRepository implements domain.ListingStore on MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewListingRepository(db *mongo.Database, log *zap.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
		logger:     log,
	}
}

// Create inserts the listing, assigning the id and creation timestamp here.
// Listings are immutable; there is no update path.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	doc, err := toListingDocument(listing)
	if err != nil {
		return nil, fmt.Errorf("prepare listing for insert: %w", err)
	}
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("InsertOne failed", zap.String("title", doc.Title), zap.Error(err))
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	r.logger.Debug("listing inserted", zap.String("listing_id", doc.ID.Hex()))
	return toDomainListing(doc), nil
}

// ListAllNewestFirst fetches every listing sorted by creation time
// descending. No pagination; the catalog is a flat list.
func (r *ListingRepository) ListAllNewestFirst(ctx context.Context) ([]*domain.Listing, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		r.logger.Error("Find failed", zap.Error(err))
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("cursor decode failed", zap.Error(err))
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	return toDomainListings(docs), nil
}
