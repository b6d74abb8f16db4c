package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

const testPlaceholderURL = "https://images.example.com/placeholder.jpg"

func validDraft() domain.Draft {
	d := domain.NewDraft()
	d.Title = "Lamp"
	d.Price = "10"
	d.Location = "Bern"
	return d
}

func newPostUsecase(store *MockListingStore, blob *MockBlobStore, publisher Publisher, notifier Notifier) (*PostUsecase, *CatalogUsecase) {
	catalog := NewCatalogUsecase(store, nil, zap.NewNop())
	uc := NewPostUsecase(store, blob, catalog, publisher, notifier, nil, testPlaceholderURL, zap.NewNop())
	return uc, catalog
}

// expectRefresh registers the catalog re-fetch that follows every successful
// post.
func expectRefresh(store *MockListingStore) {
	store.On("ListAllNewestFirst", mock.Anything).Return([]*domain.Listing{}, nil).Once()
}

func TestPost_ValidationFailuresMakeNoNetworkCalls(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Draft)
		field  string
	}{
		{"missing title", func(d *domain.Draft) { d.Title = "" }, "title"},
		{"missing price", func(d *domain.Draft) { d.Price = "" }, "price"},
		{"missing location", func(d *domain.Draft) { d.Location = "" }, "location"},
		{"non-numeric price", func(d *domain.Draft) { d.Price = "ten" }, "price"},
		{"negative price", func(d *domain.Draft) { d.Price = "-5" }, "price"},
		{"unknown category", func(d *domain.Draft) { d.Category = "Vehicles" }, "category"},
		{"All is not storable", func(d *domain.Draft) { d.Category = domain.CategoryAll }, "category"},
		{"unknown condition", func(d *domain.Draft) { d.Condition = "Broken" }, "condition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockListingStore)
			blob := new(MockBlobStore)
			uc, _ := newPostUsecase(store, blob, nil, nil)

			draft := validDraft()
			draft.ImageData = []byte{1, 2, 3}
			draft.ImageName = "lamp.jpg"
			tt.mutate(&draft)

			_, err := uc.Post(context.Background(), draft)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)

			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			blob.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPost_NoImageUsesPlaceholder(t *testing.T) {
	store := new(MockListingStore)
	blob := new(MockBlobStore)
	uc, catalog := newPostUsecase(store, blob, nil, nil)

	var written *domain.Listing
	stored := &domain.Listing{ID: "new-id", Title: "Lamp"}
	store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).
		Run(func(args mock.Arguments) { written = args.Get(1).(*domain.Listing) }).
		Return(stored, nil).Once()
	expectRefresh(store)

	created, err := uc.Post(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)

	require.NotNil(t, written)
	assert.Equal(t, testPlaceholderURL, written.ImageURL)
	assert.Equal(t, domain.SellerSelf, written.Seller)
	assert.Equal(t, domain.PostedJustNow, written.PostedDate)
	assert.Equal(t, 10.0, written.Price)
	assert.Equal(t, domain.CategoryFashion, written.Category)
	assert.Equal(t, domain.ConditionGood, written.Condition)

	blob.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	assert.True(t, catalog.Loaded(), "successful post must refresh the catalog")
	store.AssertExpectations(t)
}

func TestPost_UploadsImageBeforeCreateAndUsesURLVerbatim(t *testing.T) {
	store := new(MockListingStore)
	blob := new(MockBlobStore)
	uc, _ := newPostUsecase(store, blob, nil, nil)

	uploaded := false
	blob.On("Upload", mock.Anything, "lamp.jpg", []byte{0xff, 0xd8}).
		Run(func(mock.Arguments) { uploaded = true }).
		Return("https://blobs.example.com/photos/123-lamp.jpg", nil).Once()

	var written *domain.Listing
	store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).
		Run(func(args mock.Arguments) {
			assert.True(t, uploaded, "upload must complete before the record write")
			written = args.Get(1).(*domain.Listing)
		}).
		Return(&domain.Listing{ID: "new-id"}, nil).Once()
	expectRefresh(store)

	draft := validDraft()
	draft.ImageName = "lamp.jpg"
	draft.ImageData = []byte{0xff, 0xd8}

	_, err := uc.Post(context.Background(), draft)
	require.NoError(t, err)

	require.NotNil(t, written)
	assert.Equal(t, "https://blobs.example.com/photos/123-lamp.jpg", written.ImageURL)
	blob.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestPost_UploadFailureAbortsBeforeCreate(t *testing.T) {
	store := new(MockListingStore)
	blob := new(MockBlobStore)
	uc, _ := newPostUsecase(store, blob, nil, nil)

	blob.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket gone")).Once()

	draft := validDraft()
	draft.ImageName = "lamp.jpg"
	draft.ImageData = []byte{1}

	_, err := uc.Post(context.Background(), draft)
	assert.ErrorIs(t, err, domain.ErrBlobUnavailable)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPost_StoreFailure(t *testing.T) {
	store := new(MockListingStore)
	uc, _ := newPostUsecase(store, new(MockBlobStore), nil, nil)

	store.On("Create", mock.Anything, mock.Anything).
		Return(nil, errors.New("write timeout")).Once()

	_, err := uc.Post(context.Background(), validDraft())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestPost_RejectedWhileInFlight(t *testing.T) {
	store := new(MockListingStore)
	uc, _ := newPostUsecase(store, new(MockBlobStore), nil, nil)

	uc.inFlight.Store(true)
	_, err := uc.Post(context.Background(), validDraft())
	assert.ErrorIs(t, err, domain.ErrPostInFlight)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	uc.inFlight.Store(false)
	store.On("Create", mock.Anything, mock.Anything).Return(&domain.Listing{ID: "x"}, nil).Once()
	expectRefresh(store)
	_, err = uc.Post(context.Background(), validDraft())
	assert.NoError(t, err, "the guard must release after a post finishes")
}

func TestPost_SideEffectFailuresAreNonFatal(t *testing.T) {
	store := new(MockListingStore)
	publisher := new(MockPublisher)
	notifier := new(MockNotifier)
	uc, _ := newPostUsecase(store, new(MockBlobStore), publisher, notifier)

	store.On("Create", mock.Anything, mock.Anything).Return(&domain.Listing{ID: "new-id", Title: "Lamp"}, nil).Once()
	publisher.On("Publish", mock.Anything, "listing.created", mock.Anything).
		Return(errors.New("nats down")).Once()
	notifier.On("ListingPosted", "Lamp").Return(errors.New("smtp down")).Once()
	// Even the post-create refresh failing must not fail the post itself.
	store.On("ListAllNewestFirst", mock.Anything).Return(nil, errors.New("read failed")).Once()

	created, err := uc.Post(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)

	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
