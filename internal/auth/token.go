package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenConfig configures the JWTService.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type tokenClaims struct {
	UserID    string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	PartnerID *string `json:"partner_id"`
	jwt.RegisteredClaims
}

// JWTService implements ports.TokenService with HS256 tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewJWTService(cfg TokenConfig, log zerolog.Logger) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now, log: log}, nil
}

// Issue signs a token carrying the user's current identity.
func (s *JWTService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role.String(),
		PartnerID: user.PartnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *JWTService) Verify(token string) (*domain.SessionClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrInvalidToken
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.UserID
	}
	if subject == "" {
		s.log.Debug().Msg("token rejected: no subject")
		return nil, domain.ErrInvalidToken
	}

	out := &domain.SessionClaims{
		UserID:    subject,
		Email:     claims.Email,
		Username:  claims.Username,
		Role:      domain.Role(claims.Role),
		PartnerID: claims.PartnerID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
