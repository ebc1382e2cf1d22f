package password_test

import (
	"roombook/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.HashWithCost("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, password.Verify("s3cret-pass", hash))
	assert.ErrorIs(t, password.Verify("wrong-pass", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("s3cret-pass", ""), password.ErrInvalidPassword)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("s3cret-pass", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
