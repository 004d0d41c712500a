package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id, err := Generate(PairPrefix)
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{ArticlePrefix, PairPrefix} {
		id := MustGenerate(prefix)
		assert.True(t, strings.HasPrefix(id, prefix+"-"))
		assert.Len(t, strings.TrimPrefix(id, prefix+"-"), 21)
	}
}
