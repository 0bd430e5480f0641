package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"newsact/internal/model"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	t.Run("round trip verifies", func(t *testing.T) {
		digest, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)

		ok, err := VerifyPassword("correct horse battery staple", digest)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("wrong password is false without error", func(t *testing.T) {
		digest, err := HashPassword("password-one")
		require.NoError(t, err)

		ok, err := VerifyPassword("password-two", digest)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("same plaintext yields distinct digests", func(t *testing.T) {
		first, err := HashPassword("repeatable")
		require.NoError(t, err)
		second, err := HashPassword("repeatable")
		require.NoError(t, err)

		require.NotEqual(t, first, second)
	})

	t.Run("malformed digest is a distinct error", func(t *testing.T) {
		ok, err := VerifyPassword("anything", "not-a-bcrypt-digest")
		require.False(t, ok)
		require.True(t, errors.Is(err, model.ErrMalformedDigest))
	})
}
