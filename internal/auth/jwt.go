// Package auth issues and verifies the HS256 bearer tokens accepted by the API.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the "role" claim
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DefaultIssuer is the "iss" claim of tokens minted by Ignite
const DefaultIssuer = "ignite"

var (
	// ErrMissingSecret is returned when a signer is built without a key
	ErrMissingSecret = errors.New("jwt secret is required")

	// ErrInvalidToken wraps every verification failure
	ErrInvalidToken = errors.New("invalid token")
)

// Claims represents the JWT claims Ignite cares about
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Username returns the "sub" claim
func (c *Claims) Username() string {
	return c.Subject
}

// Signer mints and verifies tokens with a shared secret
type Signer struct {
	now    func() time.Time
	issuer string
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a signer. ttl <= 0 means tokens never expire.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue mints a token for username
func (s *Signer) Issue(username, role string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if role == "" {
		role = RoleUser
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Role: role,
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the claims.
// Only HS256 is accepted, whatever the token header says.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	tokenString = stripBearerPrefix(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing 'sub' claim", ErrInvalidToken)
	}
	return claims, nil
}

// ParseUnverified reads the claims without checking the signature.
// Clients use it to show who a stored token belongs to; never use it for access decisions.
func ParseUnverified(tokenString string) (*Claims, error) {
	tokenString = stripBearerPrefix(tokenString)

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("missing 'sub' claim")
	}
	return claims, nil
}

// stripBearerPrefix removes the "Bearer " prefix from a token string
func stripBearerPrefix(tokenString string) string {
	tokenString = strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer ")
	return strings.TrimSpace(tokenString)
}
