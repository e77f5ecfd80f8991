package artwork

import (
	"context"
	"errors"
	"fmt"
	"log"

	"artportfolio/internal/domain"
	"artportfolio/internal/repository"
	"artportfolio/internal/upload"
)

type artworkRepository interface {
	ListAll(ctx context.Context) ([]domain.Artwork, error)
	GetByID(ctx context.Context, id int64) (*domain.Artwork, error)
	Create(ctx context.Context, in repository.ArtworkInput, actorID int64) (*domain.Artwork, error)
}

type Service struct {
	artworks artworkRepository
	images   upload.Store
}

func NewService(artworks artworkRepository, images upload.Store) *Service {
	return &Service{artworks: artworks, images: images}
}

func (s *Service) List(ctx context.Context) ([]domain.Artwork, error) {
	return s.artworks.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Artwork, error) {
	return s.artworks.GetByID(ctx, id)
}

// Create stores the image, then commits the record. If the commit fails the
// stored image is removed before returning.
func (s *Service) Create(ctx context.Context, req CreateRequest, actorID int64) (*domain.Artwork, error) {
	in := repository.ArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		Medium:      req.Medium,
		Dimensions:  req.Dimensions,
		YearCreated: req.YearCreated,
		ArtistName:  req.ArtistName,
		ArtistBio:   req.ArtistBio,
	}

	// nothing is stored until the text fields pass
	probe := in
	if req.Image != nil {
		probe.ImageURL = "pending"
	}
	if err := repository.ValidateInput(probe, actorID); err != nil {
		var ve *repository.ValidationError
		if errors.As(err, &ve) && ve.Field == "imageUrl" {
			return nil, &repository.ValidationError{Field: "image", Message: "Image file is required"}
		}
		return nil, err
	}

	img, err := s.images.Save(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	in.ImageURL = img.URL

	artwork, err := s.artworks.Create(ctx, in, actorID)
	if err != nil {
		if rmErr := s.images.Remove(context.WithoutCancel(ctx), img.Key); rmErr != nil {
			log.Printf("artwork_rollback_failed image_key=%s error=%v", img.Key, rmErr)
			return nil, fmt.Errorf("%w (image cleanup failed: %v)", err, rmErr)
		}
		log.Printf("artwork_rollback image_key=%s user_id=%d error=%v", img.Key, actorID, err)
		return nil, err
	}

	log.Printf("artwork_created id=%d user_id=%d image=%s", artwork.ID, actorID, artwork.ImageURL)
	return artwork, nil
}
