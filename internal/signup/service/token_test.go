package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoTokenSource(t *testing.T) {
	source := CryptoTokenSource{}

	t.Run("produces 25 alphanumeric characters", func(t *testing.T) {
		token, err := source.Token()
		require.NoError(t, err)
		require.Len(t, token, 25)
		for _, c := range token {
			isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			assert.True(t, isAlnum, "unexpected character %q", c)
		}
	})

	t.Run("successive tokens differ", func(t *testing.T) {
		first, err := source.Token()
		require.NoError(t, err)
		second, err := source.Token()
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}
