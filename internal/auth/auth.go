// Package auth is the session collaborator for the HTTP layer. It verifies
// the bearer token minted by the external identity provider and derives the
// per-request AuthContext (user id + role). Nothing in this package, or
// anywhere downstream of it, parses cookies or sessions itself; the token
// is the only input.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/secondchance/connect-backend/internal/domain"
)

// Verification failures. The middleware maps any of them to a 401; the
// distinction exists for logs.
var (
	ErrNoToken      = errors.New("no bearer token present")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrInvalidRole  = errors.New("token carries an unsupported role")
)

// Provider derives an AuthContext from a raw Authorization header value.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Authenticate returns the identity bound to the header, ErrNoToken when
	// the header is absent, or ErrInvalidToken/ErrInvalidRole on bad input.
	Authenticate(authorization string) (domain.AuthContext, error)
}

// Claims is the JWT claim set issued by the identity provider. Subject is
// the user id; Role is the account role assigned at signup.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 session tokens against a shared secret.
type JWTProvider struct {
	secret []byte
}

// NewJWTProvider constructs a provider for the given signing secret.
func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

// Authenticate parses and verifies a "Bearer <token>" header value.
func (p *JWTProvider) Authenticate(authorization string) (domain.AuthContext, error) {
	raw := strings.TrimSpace(authorization)
	if raw == "" {
		return domain.AuthContext{}, ErrNoToken
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(raw, prefix) {
		return domain.AuthContext{}, ErrNoToken
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, prefix))
	if raw == "" {
		return domain.AuthContext{}, ErrNoToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.AuthContext{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return domain.AuthContext{}, ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.AuthContext{}, ErrInvalidRole
	}
	return domain.AuthContext{UserID: claims.Subject, Role: role}, nil
}
