package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		typed     rune
		reference rune
		want      bool
	}{
		{"exact", 'x', 'x', true},
		{"exact umlaut", 'ü', 'ü', true},
		{"lowercase fold", 'd', 'D', true},
		{"lowercase fold umlaut", 'ä', 'Ä', true},
		{"upper for lower", 'D', 'd', false},
		{"upper S for eszett", 'S', 'ß', true},
		{"lower s for eszett", 's', 'ß', true},
		{"upper U for upper umlaut", 'U', 'Ü', true},
		{"upper A for upper umlaut", 'A', 'Ä', true},
		{"upper O for upper umlaut", 'O', 'Ö', true},
		{"lower u for lower umlaut", 'u', 'ü', true},
		{"lower a for lower umlaut", 'a', 'ä', true},
		{"lower o for lower umlaut", 'o', 'ö', true},
		{"lower u for upper umlaut", 'u', 'Ü', true},
		{"lower a for upper umlaut", 'a', 'Ä', true},
		{"lower o for upper umlaut", 'o', 'Ö', true},
		{"upper U for lower umlaut", 'U', 'ü', false},
		{"upper A for lower umlaut", 'A', 'ä', false},
		{"different letter", 'e', 'ä', false},
		{"punctuation", ',', '.', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.typed, tt.reference))
		})
	}
}

func TestMatchesIsDirectional(t *testing.T) {
	assert.True(t, Matches('s', 'ß'))
	assert.False(t, Matches('ß', 's'))
	assert.False(t, Matches('ü', 'u'))
}
