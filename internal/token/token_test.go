package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		tok := Generate()
		assert.Len(t, tok, Length)
		assert.True(t, Valid(tok), tok)
		seen[tok] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("abc"))
	assert.False(t, Valid(strings.Repeat("a", Length-1)+"-"))
	assert.True(t, Valid(strings.Repeat("a", Length-1)+"Z"))
}
