package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	assert.True(t, CheckPassword(hash, "Passw0rd!"))
	assert.False(t, CheckPassword(hash, "passw0rd!"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestDummyPasswordHashIsValidBcrypt(t *testing.T) {
	// The dummy hash only has to be structurally valid so the comparison
	// takes normal bcrypt time; it must never match a real password.
	err := bcrypt.CompareHashAndPassword([]byte(DummyPasswordHash), []byte("anything"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}
