// Package email provides small helpers for composing outbound mail.
package email

import (
	"strings"
	"unicode"
)

// GreetingName derives a display name from the local part of an email
// address, for use in welcome mail salutations.
//
// Example:
//
//	GreetingName("jane.doe@example.com")
//	// Returns: "Jane"
func GreetingName(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "there"
	}

	return capitalize(parts[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
