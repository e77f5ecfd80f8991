// Package app builds the stores and the HTTP router from a Config.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"artportfolio/internal/api"
	"artportfolio/internal/config"
	"artportfolio/internal/database"
	"artportfolio/internal/modules/artwork"
	"artportfolio/internal/modules/auth"
	"artportfolio/internal/modules/user"
	"artportfolio/internal/pkg/jwt"
	"artportfolio/internal/pkg/password"
	"artportfolio/internal/repository"
	"artportfolio/internal/store"
	"artportfolio/internal/upload"
)

// OpenStore opens and initializes the document store selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (store.DocumentStore, error) {
	var s store.DocumentStore
	switch cfg.StoreDriver {
	case config.StoreFile:
		s = store.NewFileStore(cfg.DataDir)
	case config.StoreMemory:
		s = store.NewMemoryStore()
	case config.StoreSQL:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		s = store.NewSQLStore(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("init %s store: %w", cfg.StoreDriver, err)
	}
	return s, nil
}

// OpenImageStore returns the blob store for uploaded images.
func OpenImageStore(ctx context.Context, cfg *config.Config) (upload.Store, error) {
	switch cfg.ImageStore {
	case config.ImageStoreLocal:
		local := upload.NewLocalStore(cfg.UploadsDir, cfg.UploadsURLPrefix, cfg.MaxUploadSize)
		if err := local.EnsureDir(); err != nil {
			return nil, fmt.Errorf("create uploads dir: %w", err)
		}
		return local, nil
	case config.ImageStoreS3:
		client, err := upload.NewS3Client(ctx, upload.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return upload.NewS3Store(client, cfg.S3Bucket, cfg.S3PublicURL, cfg.MaxUploadSize), nil
	default:
		return nil, fmt.Errorf("unknown image store %q", cfg.ImageStore)
	}
}

// New wires repositories, services and handlers and returns the router.
// The default accounts are created when the users collection is empty.
func New(ctx context.Context, cfg *config.Config, s store.DocumentStore, images upload.Store) (*gin.Engine, error) {
	locks := store.NewLocker()
	hasher := password.NewHasher(cfg.PasswordPepper)

	userRepo := repository.NewUserRepository(s, locks)
	seeded, err := userRepo.EnsureSeeded(ctx, auth.SeedUsers(hasher, cfg.AdminPassword, cfg.UserPassword))
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	if seeded {
		log.Printf("users_seeded count=2")
	}
	artworkRepo := repository.NewArtworkRepository(s, locks)

	tokens, err := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	deps := api.Deps{
		Store:              s,
		Tokens:             tokens,
		Auth:               auth.NewHandler(auth.NewService(userRepo, hasher, tokens)),
		Artworks:           artwork.NewHandler(artwork.NewService(artworkRepo, images), cfg.MaxUploadSize),
		Users:              user.NewHandler(user.NewService(userRepo, artworkRepo)),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if local, ok := images.(*upload.LocalStore); ok {
		deps.UploadsDir = local.Dir()
		deps.UploadsURLPrefix = local.URLPrefix()
	}

	return api.NewRouter(deps), nil
}
