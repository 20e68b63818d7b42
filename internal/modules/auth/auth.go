package auth

import (
	"context"
	"errors"

	"github.com/dgrijalva/jwt-go"

	"github.com/anafloresm/ropita-backend/internal/modules/user"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	// The message is deliberately the same for both cases.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for expired, malformed or wrong-type tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Token types carried in the claims. Refresh tokens are only accepted by
// the refresh endpoint, never by the access middleware.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims is the JWT payload issued for both token types.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.StandardClaims
}

// TokenPair is the response of a successful login or refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Service defines the authentication operations.
type Service interface {
	// Login verifies the credentials and issues a token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Verify parses and validates an access token.
	Verify(tokenString string) (*Claims, error)

	// CurrentUser loads the account behind a set of claims.
	CurrentUser(ctx context.Context, claims *Claims) (*user.User, error)
}
