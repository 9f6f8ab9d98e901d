package secrets

import (
	"strings"
	"testing"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Verify("s3cret", hash))
	assert.ErrorIs(t, h.Verify("S3cret", hash), domain.ErrInvalidCredentials)
}

func TestHasher_SaltsEachHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_TooLong(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("x", 80))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHasher_CorruptHash(t *testing.T) {
	err := NewHasher(bcrypt.MinCost).Verify("pw", "not-a-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
