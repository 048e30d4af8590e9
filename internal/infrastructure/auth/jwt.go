package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/infrastructure/config"
)

// Token errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMissingUserID  = errors.New("missing user_id in claims")
	ErrInvalidClaimID = errors.New("malformed id in claims")
)

// Claims are the CRM session claims the ledger relies on. Tokens are issued
// by the CRM login service; this package only verifies them.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	AdvisorID  string `json:"advisor_id,omitempty"`
}

// UserUUID parses the acting user id
func (c *Claims) UserUUID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, ErrMissingUserID
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user_id", ErrInvalidClaimID)
	}
	return id, nil
}

// AdvisorUUID parses the advisor the session belongs to. uuid.Nil means the
// user is not an advisor.
func (c *Claims) AdvisorUUID() (uuid.UUID, error) {
	if c.AdvisorID == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(c.AdvisorID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: advisor_id", ErrInvalidClaimID)
	}
	return id, nil
}

// IsAdmin reports whether the user belongs to an admin department
func (c *Claims) IsAdmin() bool {
	return strings.Contains(strings.ToLower(c.Department), "admin")
}

// Verifier validates HS256 bearer tokens
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewVerifier creates a Verifier from the jwt config section
func NewVerifier(cfg config.JWTConfig) *Verifier {
	return &Verifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		leeway: 30 * time.Second,
	}
}

// Verify parses tokenString and returns its claims
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if _, err := claims.UserUUID(); err != nil {
		return nil, err
	}
	if _, err := claims.AdvisorUUID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// Sign issues a token for claims with the verifier's secret. Used by tests
// and the local token helper; production tokens come from the CRM.
func (v *Verifier) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.Issuer = v.issuer
	claims.Subject = claims.UserID
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
