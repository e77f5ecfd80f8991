package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort             = "3000"
	defaultJWTTTL           = "24h"
	defaultStoreDriver      = "file"
	defaultDataDir          = "./data"
	defaultDatabaseURL      = "portfolio.db"
	defaultUploadsDir       = "./public/uploads"
	defaultUploadsURLPrefix = "/uploads"
	defaultImageStore       = "local"
	defaultS3Region         = "us-east-1"
	defaultMaxUploadSize    = 50 * 1024 * 1024
	defaultAdminPassword    = "admin"
	defaultUserPassword     = "user"
)

const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreSQL    = "sql"

	ImageStoreLocal = "local"
	ImageStoreS3    = "s3"
)

type Config struct {
	AppEnv string
	Port   string

	JWTSecret      string
	JWTTTL         time.Duration
	PasswordPepper string

	StoreDriver string
	DataDir     string
	DatabaseURL string

	ImageStore       string
	UploadsDir       string
	UploadsURLPrefix string
	MaxUploadSize    int64

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	AdminPassword string
	UserPassword  string

	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	cfg.PasswordPepper = os.Getenv("PASSWORD_PEPPER")

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", defaultStoreDriver)))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", defaultDataDir))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	cfg.ImageStore = strings.ToLower(strings.TrimSpace(getEnv("IMAGE_STORE", defaultImageStore)))
	cfg.UploadsDir = strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir))
	cfg.UploadsURLPrefix = strings.TrimSpace(getEnv("UPLOADS_URL_PREFIX", defaultUploadsURLPrefix))
	cfg.MaxUploadSize, err = parseIntEnv("MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	if err != nil {
		return nil, err
	}

	cfg.S3Endpoint = strings.TrimSpace(os.Getenv("S3_ENDPOINT"))
	cfg.S3Region = strings.TrimSpace(getEnv("S3_REGION", defaultS3Region))
	cfg.S3Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET"))
	cfg.S3AccessKey = strings.TrimSpace(os.Getenv("S3_ACCESS_KEY"))
	cfg.S3SecretKey = strings.TrimSpace(os.Getenv("S3_SECRET_KEY"))
	cfg.S3PublicURL = strings.TrimSpace(os.Getenv("S3_PUBLIC_URL"))

	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", defaultAdminPassword)
	cfg.UserPassword = getEnv("USER_PASSWORD", defaultUserPassword)

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s store=%s image_store=%s jwt_ttl=%s", cfg.AppEnv, cfg.StoreDriver, cfg.ImageStore, cfg.JWTTTL)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}

	switch cfg.StoreDriver {
	case StoreFile:
		if cfg.DataDir == "" {
			return fmt.Errorf("DATA_DIR must not be empty")
		}
	case StoreMemory:
	case StoreSQL:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must not be empty")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: file, memory, sql")
	}

	switch cfg.ImageStore {
	case ImageStoreLocal:
		if cfg.UploadsDir == "" {
			return fmt.Errorf("UPLOADS_DIR must not be empty")
		}
		if strings.Trim(cfg.UploadsURLPrefix, "/") == "" {
			return fmt.Errorf("UPLOADS_URL_PREFIX must not be empty")
		}
	case ImageStoreS3:
		if cfg.S3Bucket == "" || cfg.S3PublicURL == "" {
			return fmt.Errorf("S3_BUCKET and S3_PUBLIC_URL must be set when IMAGE_STORE=s3")
		}
		if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set when IMAGE_STORE=s3")
		}
	default:
		return fmt.Errorf("IMAGE_STORE must be one of: local, s3")
	}

	if cfg.IsProdLike() {
		if cfg.PasswordPepper == "" {
			return fmt.Errorf("in prod/release PASSWORD_PEPPER must be set")
		}
		if cfg.AdminPassword == defaultAdminPassword || cfg.UserPassword == defaultUserPassword {
			return fmt.Errorf("in prod/release ADMIN_PASSWORD and USER_PASSWORD must be changed from defaults")
		}
		if cfg.StoreDriver == StoreMemory {
			return fmt.Errorf("in prod/release STORE_DRIVER=memory is not allowed")
		}
	}

	return nil
}

func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
