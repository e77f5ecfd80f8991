package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"artportfolio/internal/domain"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Claims struct {
	UserID int64           `json:"userId"`
	Role   domain.UserRole `json:"role"`
	Name   string          `json:"name"`
	jwtlib.RegisteredClaims
}

// New refuses an empty secret; there is no fallback key.
func New(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be > 0")
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// GenerateToken signs an HS256 token carrying the identity until now+ttl.
func (s *Service) GenerateToken(identity domain.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: identity.ID,
		Role:   identity.Role,
		Name:   identity.Name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the identity in tokenStr, ErrTokenExpired once it is
// past its expiry, and ErrTokenInvalid for anything else.
func (s *Service) ValidateToken(tokenStr string) (domain.Identity, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return domain.Identity{}, ErrTokenExpired
		}
		return domain.Identity{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return domain.Identity{}, ErrTokenInvalid
	}

	return domain.Identity{ID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
