package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wellnest/wellnest-api/internal/config"
)

// TokenService issues and verifies the bearer tokens used by the HTTP API.
// Tokens are stateless; rotating the signing secret invalidates every
// outstanding token.
type TokenService struct {
	jwtAuth JWTAuthenticator
	cfg     config.TokenConfig
}

// NewTokenService creates a TokenService from the given token configuration.
func NewTokenService(cfg config.TokenConfig) *TokenService {
	return &TokenService{
		jwtAuth: NewJWTAuthenticator(cfg.Issuer, cfg.Issuer),
		cfg:     cfg,
	}
}

// Issue generates a signed token embedding the user id, valid for the
// configured window from now.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Issuer},
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return s.jwtAuth.GenerateToken(claims, s.cfg.Secret)
}

// Verify validates a token and returns the embedded user id. It returns
// ErrInvalidToken whether the signature fails to validate or the token has
// expired.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	if _, err := s.jwtAuth.ValidateTokenWithClaims(tokenString, s.cfg.Secret, claims); err != nil {
		return "", ErrInvalidToken
	}

	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
