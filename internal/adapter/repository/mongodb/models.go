package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

// listingDocument is the persisted shape of a Listing.
type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Condition   string             `bson:"condition"`
	Seller      string             `bson:"seller"`
	Location    string             `bson:"location"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url"`
	PostedDate  string             `bson:"posted_date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing id %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:          docID,
		Title:       l.Title,
		Price:       l.Price,
		Category:    string(l.Category),
		Condition:   string(l.Condition),
		Seller:      l.Seller,
		Location:    l.Location,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		PostedDate:  l.PostedDate,
		CreatedAt:   l.CreatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	return &domain.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Price:       d.Price,
		Category:    domain.Category(d.Category),
		Condition:   domain.Condition(d.Condition),
		Seller:      d.Seller,
		Location:    d.Location,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		PostedDate:  d.PostedDate,
		CreatedAt:   d.CreatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDomainListing(doc))
	}
	return out
}
