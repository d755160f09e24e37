package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidEmail is wrapped by every email validation failure.
var ErrInvalidEmail = errors.New("invalid subscriber email")

var validate = validator.New()

// SubscriberEmail is an address that has passed RFC 5322 style validation.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates raw and wraps it.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if err := validate.Var(raw, "required,email"); err != nil {
		return SubscriberEmail{}, fmt.Errorf("%w: %q is not a valid email address", ErrInvalidEmail, raw)
	}
	return SubscriberEmail{value: raw}, nil
}

func (e SubscriberEmail) String() string { return e.value }
