package artwork

import "mime/multipart"

// CreateRequest is the multipart form of POST /api/artworks.
type CreateRequest struct {
	Title       string
	Description string
	Medium      string
	Dimensions  string
	YearCreated string
	ArtistName  string
	ArtistBio   string
	Image       *multipart.FileHeader
}
