// internal/pkg/jwt/jwt.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Claims represents the JWT claims
type Claims struct {
	IdentityID int64  `json:"identity_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin checks if the claims carry the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

type Manager struct {
	cfg Config
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt manager requires a signing secret")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Manager{cfg: cfg}, nil
}

// Generate creates a signed token for the given identity and role.
// Returns the token and its JTI.
func (m *Manager) Generate(identityID int64, role string) (string, string, error) {
	now := time.Now()
	jti := ulid.Make().String()

	claims := &Claims{
		IdentityID: identityID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   fmt.Sprintf("%d", identityID),
			Audience:  []string{m.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(m.cfg.Secret))
	return signed, jti, err
}

// Verify parses and validates a token string and returns its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	},
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
