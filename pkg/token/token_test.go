package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *Manager {
	return NewManager("access-secret", "refresh-secret", accessTTL, refreshTTL)
}

func TestIssuePairRoundTrip(t *testing.T) {
	m := newTestManager(15*time.Minute, 7*24*time.Hour)

	userID := uuid.New()
	ownerID := uuid.New()
	pair, err := m.IssuePair(userID, "ADMIN", &ownerID)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := m.Verify(pair.AccessToken, Access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	require.NotNil(t, claims.OwnerID)
	assert.Equal(t, ownerID, *claims.OwnerID)
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)

	claims, err = m.Verify(pair.RefreshToken, Refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestOwnerTokenHasNoOwnerID(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)

	access, err := m.Generate(Access, uuid.New(), "OWNER", nil)
	require.NoError(t, err)

	claims, err := m.Verify(access, Access)
	require.NoError(t, err)
	assert.Nil(t, claims.OwnerID)
}

func TestVerifyExpiredToken(t *testing.T) {
	// A negative TTL issues an already-expired token; the failure must
	// be the single ErrInvalidToken, not a distinct "expired" error.
	m := newTestManager(-time.Minute, time.Hour)

	access, err := m.Generate(Access, uuid.New(), "STAFF", nil)
	require.NoError(t, err)

	claims, err := m.Verify(access, Access)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)

	access, err := m.Generate(Access, uuid.New(), "STAFF", nil)
	require.NoError(t, err)

	// Access and refresh secrets are independent
	_, err = m.Verify(access, Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedAndTampered(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)

	_, err := m.Verify("not-a-token", Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.Generate(Access, uuid.New(), "STAFF", nil)
	require.NoError(t, err)
	_, err = m.Verify(access+"x", Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	other := NewManager("other-access", "other-refresh", time.Minute, time.Hour)

	forged, err := other.Generate(Access, uuid.New(), "OWNER", nil)
	require.NoError(t, err)

	_, err = m.Verify(forged, Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
