package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

type MockListingStore struct{ mock.Mock }

func (m *MockListingStore) ListAllNewestFirst(ctx context.Context) ([]*domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func (m *MockListingStore) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	args := m.Called(ctx, listing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

type MockCatalogCache struct{ mock.Mock }

func (m *MockCatalogCache) Get(ctx context.Context) ([]*domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func (m *MockCatalogCache) Set(ctx context.Context, listings []*domain.Listing) error {
	args := m.Called(ctx, listings)
	return args.Error(0)
}

func (m *MockCatalogCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) ListingPosted(title string) error {
	args := m.Called(title)
	return args.Error(0)
}
