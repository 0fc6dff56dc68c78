package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hashed)
	assert.True(t, hasher.Verify("secret", hashed))
	assert.False(t, hasher.Verify("not-secret", hashed))
}

func TestPasswordHasher_HashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("secret", first))
	assert.True(t, hasher.Verify("secret", second))
}

func TestPasswordHasher_MalformedHashVerifiesFalse(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, hasher.Verify("secret", ""))
	assert.False(t, hasher.Verify("secret", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("secret", "$2a$garbage"))
}

func TestNewPasswordHasher_ClampsInvalidCost(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(99)

	hashed, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("secret", hashed))
}
