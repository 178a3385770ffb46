package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	require.NotEqual(t, "rahasia123", hash)

	assert.True(t, VerifyPassword(hash, "rahasia123"))
	assert.False(t, VerifyPassword(hash, "salah"))
	assert.False(t, VerifyPassword("", "rahasia123"))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("rahasia123")
	require.NoError(t, err)
	h2, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
