package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretMatches(t *testing.T) {
	hash, err := HashSecret("longenough1")
	require.NoError(t, err)

	u := &User{ID: "u1", Email: "ab@x.co", PasswordHash: hash}

	assert.True(t, u.SecretMatches("longenough1"))
	assert.False(t, u.SecretMatches("wrongsecret"))
	assert.False(t, u.SecretMatches(""))
}

func TestHashSecret_TooLong(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	_, err := HashSecret(string(long))
	require.Error(t, err)
}

func TestPublic_DropsSecretMaterial(t *testing.T) {
	hash, err := HashSecret("longenough1")
	require.NoError(t, err)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := &User{ID: "u1", Email: "ab@x.co", PasswordHash: hash, CreatedAt: created}

	p := u.Public()
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, u.Email, p.Email)
	assert.Equal(t, created, p.CreatedAt)

	// the serialized projection must not mention the hash under any name
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "salt")
	assert.NotContains(t, string(b), string(hash))
}
