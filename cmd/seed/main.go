package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"artportfolio/internal/app"
	"artportfolio/internal/config"
	"artportfolio/internal/domain"
	"artportfolio/internal/modules/auth"
	"artportfolio/internal/pkg/password"
	"artportfolio/internal/repository"
	"artportfolio/internal/store"
)

const janeSmithBio = "Jane Smith is a contemporary landscape artist known for her expressive brushwork and vibrant color palette. " +
	"Inspired by the natural world, her work explores the emotional impact of light and atmosphere in natural settings."

func main() {
	useBcrypt := flag.Bool("bcrypt", false, "store bcrypt hashes instead of keyed digests")
	skipArtworks := flag.Bool("users-only", false, "leave the artworks collection untouched")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("dotenv: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.StoreDriver == config.StoreMemory {
		log.Fatal("seeding the memory store has no effect, set STORE_DRIVER=file or sql")
	}

	ctx := context.Background()
	s, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("store open failed:", err)
	}
	locks := store.NewLocker()

	log.Println("Creating users...")
	users := auth.SeedUsers(password.NewHasher(cfg.PasswordPepper), cfg.AdminPassword, cfg.UserPassword)
	if *useBcrypt {
		secrets := []string{cfg.AdminPassword, cfg.UserPassword}
		for i := range users {
			h, err := password.Bcrypt(users[i].Username, secrets[i])
			if err != nil {
				log.Fatal("bcrypt failed:", err)
			}
			users[i].Hash = h
		}
	}
	if err := repository.NewUserRepository(s, locks).Replace(ctx, users); err != nil {
		log.Fatal("write users failed:", err)
	}

	if !*skipArtworks {
		log.Println("Creating artworks...")
		if err := repository.NewArtworkRepository(s, locks).Replace(ctx, demoArtworks()); err != nil {
			log.Fatal("write artworks failed:", err)
		}
	}

	log.Printf("Seed completed: store=%s users=%d", cfg.StoreDriver, len(users))
}

func demoArtworks() []domain.Artwork {
	at := func(v string) time.Time {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			log.Fatal(err)
		}
		return t
	}

	return []domain.Artwork{
		{
			ID:            1,
			Title:         "Sunset Reflections",
			Description:   "A vibrant impressionist landscape capturing the warm glow of a summer sunset over a tranquil lake.",
			ImageURL:      "/uploads/Hillside.jpg",
			CreatedByUser: domain.AdminUserID,
			CreatedAt:     at("2024-01-15T14:22:56Z"),
			Medium:        "Oil on canvas",
			Dimensions:    `24" x 36"`,
			YearCreated:   "2023",
			ArtistName:    domain.DefaultArtistName,
			ArtistBio:     janeSmithBio,
		},
		{
			ID:            2,
			Title:         "Urban Fragments",
			Description:   "A mixed media collage of architectural elements, text and abstract forms about the layered experience of city life.",
			ImageURL:      "/uploads/weirdPainting.jpg",
			CreatedByUser: domain.AdminUserID,
			CreatedAt:     at("2024-02-10T09:15:30Z"),
			Medium:        "Mixed media on wood panel",
			Dimensions:    `30" x 40"`,
			YearCreated:   "2024",
			ArtistName:    domain.DefaultArtistName,
			ArtistBio:     janeSmithBio,
		},
		{
			ID:            3,
			Title:         "Whispers of Memory",
			Description:   "An abstract expressionist painting where layers of paint are built up and scraped away to reveal earlier marks.",
			ImageURL:      "/uploads/flowers.jpg",
			CreatedByUser: domain.AdminUserID,
			CreatedAt:     at("2024-03-05T16:40:22Z"),
			Medium:        "Acrylic and oil pastel on canvas",
			Dimensions:    `36" x 48"`,
			YearCreated:   "2023",
			ArtistName:    domain.DefaultArtistName,
			ArtistBio:     janeSmithBio,
		},
		{
			ID:            4,
			Title:         "Botanical Studies: Spring Collection",
			Description:   "Watercolor studies of spring flora from the artist's garden, rendered with botanical accuracy and loose brushwork.",
			ImageURL:      "/uploads/colorfulOwlPainting.jpg",
			CreatedByUser: domain.AdminUserID,
			CreatedAt:     at("2024-04-12T11:30:45Z"),
			Medium:        "Watercolor on cotton paper",
			Dimensions:    `12" x 16" (each)`,
			YearCreated:   "2024",
			ArtistName:    domain.DefaultArtistName,
			ArtistBio:     janeSmithBio,
		},
		{
			ID:            5,
			Title:         "Contemplation in Blue",
			Description:   "A solitary figure in quiet introspection, painted in shades of blue with complementary amber tones.",
			ImageURL:      "/uploads/oilFlowers.png",
			CreatedByUser: domain.AdminUserID,
			CreatedAt:     at("2024-04-25T14:20:10Z"),
			Medium:        "Oil on linen",
			Dimensions:    `32" x 48"`,
			YearCreated:   "2023",
			ArtistName:    domain.DefaultArtistName,
			ArtistBio:     janeSmithBio,
		},
	}
}
