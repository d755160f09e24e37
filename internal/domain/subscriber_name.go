package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// MaxNameGraphemes is the longest name we accept, counted in user-perceived characters.
const MaxNameGraphemes = 256

const forbiddenNameChars = `/()"<>\{}`

// ErrInvalidName is wrapped by every name validation failure.
var ErrInvalidName = errors.New("invalid subscriber name")

// SubscriberName is a name that has passed validation. The zero value is not valid;
// build one with ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw and wraps it.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberName{}, fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if n := uniseg.GraphemeClusterCount(raw); n > MaxNameGraphemes {
		return SubscriberName{}, fmt.Errorf("%w: %d characters, max %d", ErrInvalidName, n, MaxNameGraphemes)
	}
	if i := strings.IndexAny(raw, forbiddenNameChars); i >= 0 {
		return SubscriberName{}, fmt.Errorf("%w: forbidden character %q", ErrInvalidName, raw[i])
	}
	return SubscriberName{value: raw}, nil
}

func (n SubscriberName) String() string { return n.value }
