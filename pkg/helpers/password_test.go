package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password124"))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	// bcrypt salts, so two hashes of the same input differ but both verify.
	h1, err := HashPassword("same-input", 4)
	require.NoError(t, err)
	h2, err := HashPassword("same-input", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "same-input"))
	assert.True(t, CheckPassword(h2, "same-input"))
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
	t.Parallel()

	// Falls back to the default work factor instead of erroring.
	hash, err := HashPassword("p", 99)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "p"))
}

func TestCheckPassword_FailsClosed(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("", "anything"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
	assert.False(t, CheckPassword("$2a$10$garbage", "anything"))
}
