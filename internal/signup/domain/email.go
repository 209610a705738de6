package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidEmail reports an address that does not satisfy email syntax.
var ErrInvalidEmail = errors.New("invalid email address")

var validate = validator.New()

// Email is an immutable, syntactically valid email address.
type Email struct {
	value string
}

// ParseEmail validates raw against standard email syntax and wraps it.
func ParseEmail(raw string) (Email, error) {
	if err := validate.Var(raw, "required,email"); err != nil {
		return Email{}, fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return Email{value: raw}, nil
}

// String returns the original validated address.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether e is the zero value rather than a parsed address.
func (e Email) IsZero() bool {
	return e.value == ""
}
