package artwork

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"artportfolio/internal/domain"
	"artportfolio/internal/repository"
	"artportfolio/internal/store"
	"artportfolio/internal/upload"
)

type mockArtworkRepo struct {
	mock.Mock
}

func (m *mockArtworkRepo) ListAll(ctx context.Context) ([]domain.Artwork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepo) GetByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

func (m *mockArtworkRepo) Create(ctx context.Context, in repository.ArtworkInput, actorID int64) (*domain.Artwork, error) {
	args := m.Called(ctx, in, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artwork), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, fh *multipart.FileHeader) (*upload.Image, error) {
	args := m.Called(ctx, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upload.Image), args.Error(1)
}

func (m *mockImageStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var image = &multipart.FileHeader{Filename: "a.png", Size: 10}

func TestService_Create_Success(t *testing.T) {
	repo := new(mockArtworkRepo)
	images := new(mockImageStore)
	images.On("Save", mock.Anything, image).Return(&upload.Image{Key: "k.png", URL: "/uploads/k.png"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(in repository.ArtworkInput) bool {
		return in.Title == "T" && in.ImageURL == "/uploads/k.png"
	}), int64(1)).Return(&domain.Artwork{ID: 1, Title: "T", ImageURL: "/uploads/k.png"}, nil)

	a, err := NewService(repo, images).Create(context.Background(), CreateRequest{Title: "T", Description: "D", Image: image}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	images.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestService_Create_ValidationStoresNothing(t *testing.T) {
	cases := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{"title", CreateRequest{Description: "D", Image: image}, "title"},
		{"description", CreateRequest{Title: "T", Image: image}, "description"},
		{"image", CreateRequest{Title: "T", Description: "D"}, "image"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockArtworkRepo)
			images := new(mockImageStore)

			_, err := NewService(repo, images).Create(context.Background(), tc.req, 1)
			require.ErrorIs(t, err, repository.ErrValidation)

			var ve *repository.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)

			images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_RollsBackImageOnCommitFailure(t *testing.T) {
	repo := new(mockArtworkRepo)
	images := new(mockImageStore)
	storeErr := &store.Error{Op: "save", Collection: store.Artworks, Err: errors.New("disk full")}

	images.On("Save", mock.Anything, image).Return(&upload.Image{Key: "k.png", URL: "/uploads/k.png"}, nil)
	repo.On("Create", mock.Anything, mock.Anything, int64(1)).Return(nil, storeErr)
	images.On("Remove", mock.Anything, "k.png").Return(nil)

	_, err := NewService(repo, images).Create(context.Background(), CreateRequest{Title: "T", Description: "D", Image: image}, 1)
	assert.ErrorIs(t, err, store.ErrIO)
	images.AssertExpectations(t)
}

func TestService_Create_ReportsFailedCleanup(t *testing.T) {
	repo := new(mockArtworkRepo)
	images := new(mockImageStore)

	images.On("Save", mock.Anything, image).Return(&upload.Image{Key: "k.png", URL: "/uploads/k.png"}, nil)
	repo.On("Create", mock.Anything, mock.Anything, int64(1)).Return(nil, &store.Error{Op: "save", Err: errors.New("disk full")})
	images.On("Remove", mock.Anything, "k.png").Return(errors.New("permission denied"))

	_, err := NewService(repo, images).Create(context.Background(), CreateRequest{Title: "T", Description: "D", Image: image}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrIO)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestService_Create_ImageRejected(t *testing.T) {
	repo := new(mockArtworkRepo)
	images := new(mockImageStore)
	images.On("Save", mock.Anything, image).Return(nil, upload.ErrInvalidMimeType)

	_, err := NewService(repo, images).Create(context.Background(), CreateRequest{Title: "T", Description: "D", Image: image}, 1)
	assert.ErrorIs(t, err, upload.ErrInvalidMimeType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
