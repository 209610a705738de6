// Package domain holds the validated value objects for the signup flow.
// Construction is the only way to obtain a value; anything else is rejected.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apparentlymart/go-textseg/v15/textseg"
)

// ErrInvalidUsername reports a username that failed validation.
var ErrInvalidUsername = errors.New("invalid username")

// maxUsernameGraphemes bounds the username by user-perceived characters
// (grapheme clusters), not bytes or runes.
const maxUsernameGraphemes = 256

var forbiddenUsernameChars = [...]rune{'/', '(', ')', '"', '<', '>', '\\', '{', '}', ' '}

// Username is an immutable, validated username.
type Username struct {
	value string
}

// ParseUsername validates raw and wraps it. It rejects empty or
// whitespace-only input, more than 256 grapheme clusters, and any
// forbidden character.
func ParseUsername(raw string) (Username, error) {
	if strings.TrimSpace(raw) == "" {
		return Username{}, fmt.Errorf("%w: empty", ErrInvalidUsername)
	}

	count, err := textseg.TokenCount([]byte(raw), textseg.ScanGraphemeClusters)
	if err != nil {
		return Username{}, fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}
	if count > maxUsernameGraphemes {
		return Username{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidUsername, maxUsernameGraphemes)
	}

	if strings.ContainsAny(raw, string(forbiddenUsernameChars[:])) {
		return Username{}, fmt.Errorf("%w: contains a forbidden character", ErrInvalidUsername)
	}

	return Username{value: raw}, nil
}

// String returns the original validated input.
func (u Username) String() string {
	return u.value
}

// IsZero reports whether u is the zero value rather than a parsed username.
func (u Username) IsZero() bool {
	return u.value == ""
}
