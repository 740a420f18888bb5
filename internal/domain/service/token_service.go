package service

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminators embedded in the claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens. Access tokens embed
// the identity attributes the caller may assert without a database round
// trip; refresh tokens carry only the subject and a jti for revocation.
type Claims struct {
	UserID  uuid.UUID `json:"-"`
	Email   string    `json:"email,omitempty"`
	Name    string    `json:"name,omitempty"`
	IsStaff bool      `json:"is_staff,omitempty"`
	Roles   []string  `json:"roles,omitempty"`
	Type    string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access and refresh token pair for a user.
	// The refresh token's jti is returned so the session store and the
	// revocation store can reference it.
	GenerateTokens(user *entity.User) (accessToken, refreshToken string, refreshTokenID uuid.UUID, err error)

	// ValidateToken checks the validity of a token string of either type.
	ValidateToken(tokenString string) (*Claims, error)

	// HashToken produces the digest under which a refresh token is stored.
	// Raw token strings never reach persistence.
	HashToken(tokenString string) string

	// GetAccessTokenDuration returns the configured access token lifetime.
	GetAccessTokenDuration() time.Duration

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
