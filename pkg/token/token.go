// Package token issues and verifies the signed access/refresh token
// pair carrying a user's identity, role, and tenant scope.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Kind selects which signing secret and lifetime a token uses
type Kind int

const (
	Access Kind = iota
	Refresh
)

// Claims is the wire-level token payload. OwnerID is nil for OWNER
// users; every other role carries its tenant owner's id.
type Claims struct {
	UserID  uuid.UUID  `json:"userId"`
	Role    string     `json:"role"`
	OwnerID *uuid.UUID `json:"ownerId,omitempty"`
	jwt.RegisteredClaims
}

// Pair is an access/refresh token pair issued at login
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Manager signs and verifies tokens. Access and refresh tokens use
// independent secrets and independent expiry configuration.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *Manager) secretFor(kind Kind) []byte {
	if kind == Refresh {
		return m.refreshSecret
	}
	return m.accessSecret
}

func (m *Manager) ttlFor(kind Kind) time.Duration {
	if kind == Refresh {
		return m.refreshTTL
	}
	return m.accessTTL
}

// Generate creates a signed token of the given kind
func (m *Manager) Generate(kind Kind, userID uuid.UUID, role string, ownerID *uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Role:    role,
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttlFor(kind))),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "go-pos-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretFor(kind))
}

// IssuePair issues a fresh access/refresh pair for a user
func (m *Manager) IssuePair(userID uuid.UUID, role string, ownerID *uuid.UUID) (*Pair, error) {
	access, err := m.Generate(Access, userID, role, ownerID)
	if err != nil {
		return nil, err
	}
	refresh, err := m.Generate(Refresh, userID, role, ownerID)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify parses and validates a token of the given kind. Malformed,
// expired, and badly signed tokens all fail with ErrInvalidToken; the
// sub-cause is deliberately not exposed.
func (m *Manager) Verify(tokenString string, kind Kind) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretFor(kind), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
