package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher()

	password := "Abcdef1!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	ok, err := hasher.Check(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_CheckMismatchIsNotAnError(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("Abcdef1!")
	require.NoError(t, err)

	ok, err := hasher.Check("Wrongpass1!", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = hasher.Check("", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_MalformedStoredHash(t *testing.T) {
	hasher := NewBcryptHasher()

	ok, err := hasher.Check("Abcdef1!", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("Abcdef1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Abcdef1!")
	require.NoError(t, err)

	// Same password, different salt, different digest.
	assert.NotEqual(t, first, second)
}
