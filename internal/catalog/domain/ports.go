package domain

import "context"

// ListingStore is the external document database holding listing records.
type ListingStore interface {
	// ListAllNewestFirst fetches every listing ordered by creation time
	// descending.
	ListAllNewestFirst(ctx context.Context) ([]*Listing, error)
	// Create persists a new record, assigning ID and CreatedAt, and returns
	// the stored listing.
	Create(ctx context.Context, listing *Listing) (*Listing, error)
}

// BlobStore is the external object storage for listing images.
type BlobStore interface {
	// Upload stores data under a key derived from fileName and returns a
	// durable retrieval URL.
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}
