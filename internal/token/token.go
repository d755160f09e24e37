// Package token generates subscription confirmation tokens.
package token

import "crypto/rand"

// Length of every generated token.
const Length = 25

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// bytes at or above this value are discarded so that every symbol is equally likely
const maxUnbiased = 256 - 256%len(alphabet)

// Generate returns a uniformly random alphanumeric token. It panics if the
// system entropy source fails.
func Generate() string {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length*2)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			panic("token: entropy source unavailable: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out)
}

// Valid reports whether s has the shape of a generated token.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
