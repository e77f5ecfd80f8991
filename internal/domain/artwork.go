package domain

import (
	"strconv"
	"time"
)

const (
	DefaultMedium     = "Mixed media"
	DefaultDimensions = "Various dimensions"
	DefaultArtistName = "Jane Smith"
	DefaultArtistBio  = "Contemporary artist specializing in various mediums and styles."
)

type Artwork struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description" validate:"required"`
	ImageURL      string    `json:"imageUrl" validate:"required"`
	CreatedByUser int64     `json:"createdByUser" validate:"required"`
	CreatedAt     time.Time `json:"createdAt"`
	Medium        string    `json:"medium"`
	Dimensions    string    `json:"dimensions"`
	YearCreated   string    `json:"yearCreated"`
	ArtistName    string    `json:"artistName"`
	ArtistBio     string    `json:"artistBio"`
}

// ApplyDefaults fills empty optional fields. now supplies the fallback year.
func (a *Artwork) ApplyDefaults(now time.Time) {
	if a.Medium == "" {
		a.Medium = DefaultMedium
	}
	if a.Dimensions == "" {
		a.Dimensions = DefaultDimensions
	}
	if a.YearCreated == "" {
		a.YearCreated = strconv.Itoa(now.Year())
	}
	if a.ArtistName == "" {
		a.ArtistName = DefaultArtistName
	}
	if a.ArtistBio == "" {
		a.ArtistBio = DefaultArtistBio
	}
}

// ArtworkSummary is the short form listed on a user profile.
type ArtworkSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

func (a Artwork) Summary() ArtworkSummary {
	return ArtworkSummary{ID: a.ID, Title: a.Title, ImageURL: a.ImageURL}
}
