package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGeneratePairClaims(t *testing.T) {
	m := newTestManager()

	pair, err := m.GeneratePair("user-1", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	access, err := m.ParseAccessToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", access.UserID)
	assert.Equal(t, "a@b.com", access.Email)
	assert.Equal(t, TokenTypeAccess, access.TokenType)
	assert.NotEmpty(t, access.ID, "jti claim")
	assert.NotNil(t, access.IssuedAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), access.ExpiresAt.Time, time.Minute)

	refresh, err := m.ParseRefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), refresh.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	m := newTestManager()
	pair, err := m.GeneratePair("user-1", "a@b.com")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(pair.Refresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = m.ParseRefreshToken(pair.Access)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	m := newTestManager()
	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.ParseAccessToken(tampered)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	token, _, err := m.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	other := NewJWTManager("other-secret", 15*time.Minute, time.Hour)
	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	expired := NewJWTManager("test-secret", -time.Minute, -time.Minute)
	token, _, err := expired.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	m := newTestManager()
	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := newTestManager()
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ParseAccessToken(tok)
		assert.Error(t, err, "token %q", tok)
	}
}
