package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// tokenLength is the confirmation token size in characters.
const tokenLength = 25

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenSource produces confirmation tokens. Injected so tests can supply a
// deterministic sequence; production uses CryptoTokenSource.
type TokenSource interface {
	Token() (string, error)
}

// CryptoTokenSource samples alphanumeric characters from crypto/rand.
type CryptoTokenSource struct{}

// Token returns a fresh 25-character alphanumeric token.
func (CryptoTokenSource) Token() (string, error) {
	alphabetSize := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sample token character: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
