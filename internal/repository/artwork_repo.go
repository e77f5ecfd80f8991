package repository

import (
	"context"
	"strings"
	"time"

	"artportfolio/internal/domain"
	"artportfolio/internal/pkg/validator"
	"artportfolio/internal/store"
)

// ArtworkInput carries the caller-supplied fields of a new artwork.
type ArtworkInput struct {
	Title       string
	Description string
	ImageURL    string
	Medium      string
	Dimensions  string
	YearCreated string
	ArtistName  string
	ArtistBio   string
}

var requiredMessages = map[string]string{
	"title":         "Title is required",
	"description":   "Description is required",
	"imageUrl":      "Image URL is required",
	"createdByUser": "User ID is required",
}

// ArtworkRepository is the only writer of the artworks collection.
type ArtworkRepository struct {
	store store.DocumentStore
	locks *store.Locker
	now   func() time.Time
}

func NewArtworkRepository(s store.DocumentStore, locks *store.Locker) *ArtworkRepository {
	return &ArtworkRepository{store: s, locks: locks, now: time.Now}
}

// ListAll returns artworks in stored order with optional fields defaulted.
func (r *ArtworkRepository) ListAll(ctx context.Context) ([]domain.Artwork, error) {
	artworks, err := store.ReadCollection[domain.Artwork](ctx, r.store, store.Artworks)
	if err != nil {
		return nil, err
	}
	now := r.now()
	for i := range artworks {
		artworks[i].ApplyDefaults(now)
	}
	return artworks, nil
}

func (r *ArtworkRepository) GetByID(ctx context.Context, id int64) (*domain.Artwork, error) {
	artworks, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range artworks {
		if artworks[i].ID == id {
			return &artworks[i], nil
		}
	}
	return nil, ErrArtworkNotFound
}

func (r *ArtworkRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Artwork, error) {
	artworks, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if a.CreatedByUser == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ValidateInput checks the required fields in order: title, description,
// imageUrl, actor. The first failure is returned as a *ValidationError.
func ValidateInput(in ArtworkInput, actorID int64) error {
	a := domain.Artwork{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      strings.TrimSpace(in.ImageURL),
		CreatedByUser: actorID,
	}
	if fe := validator.First(a); fe != nil {
		msg, ok := requiredMessages[fe.Field]
		if !ok {
			msg = fe.Field + " is invalid"
		}
		return &ValidationError{Field: fe.Field, Message: msg}
	}
	return nil
}

// Create validates in, assigns id = max(existing)+1 and appends the artwork.
// The collection lock is held from read to write.
func (r *ArtworkRepository) Create(ctx context.Context, in ArtworkInput, actorID int64) (*domain.Artwork, error) {
	if err := ValidateInput(in, actorID); err != nil {
		return nil, err
	}

	unlock := r.locks.Lock(store.Artworks)
	defer unlock()

	artworks, err := store.ReadCollection[domain.Artwork](ctx, r.store, store.Artworks)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, a := range artworks {
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	now := r.now().UTC()
	artwork := domain.Artwork{
		ID:            maxID + 1,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      strings.TrimSpace(in.ImageURL),
		CreatedByUser: actorID,
		CreatedAt:     now,
		Medium:        strings.TrimSpace(in.Medium),
		Dimensions:    strings.TrimSpace(in.Dimensions),
		YearCreated:   strings.TrimSpace(in.YearCreated),
		ArtistName:    strings.TrimSpace(in.ArtistName),
		ArtistBio:     strings.TrimSpace(in.ArtistBio),
	}
	artwork.ApplyDefaults(now)

	artworks = append(artworks, artwork)
	if err := store.WriteCollection(ctx, r.store, store.Artworks, artworks); err != nil {
		return nil, err
	}
	return &artwork, nil
}

// Replace overwrites the whole collection. Used by the seed tool.
func (r *ArtworkRepository) Replace(ctx context.Context, artworks []domain.Artwork) error {
	unlock := r.locks.Lock(store.Artworks)
	defer unlock()
	return store.WriteCollection(ctx, r.store, store.Artworks, artworks)
}
