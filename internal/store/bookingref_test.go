package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRefGenerator(t *testing.T) {
	gen, err := NewBookingRefGenerator("test-salt")
	require.NoError(t, err)

	t.Run("stable for the same id", func(t *testing.T) {
		a, err := gen.Generate(42)
		require.NoError(t, err)
		b, err := gen.Generate(42)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("distinct ids get distinct codes", func(t *testing.T) {
		seen := map[string]bool{}
		for id := int64(1); id <= 100; id++ {
			ref, err := gen.Generate(id)
			require.NoError(t, err)
			assert.False(t, seen[ref], ref)
			seen[ref] = true
		}
	})

	t.Run("format", func(t *testing.T) {
		ref, err := gen.Generate(7)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(ref, "FS-"))
		code := strings.TrimPrefix(ref, "FS-")
		assert.GreaterOrEqual(t, len(code), 8)
		for _, r := range code {
			assert.Contains(t, bookingRefAlphabet, string(r))
		}
	})
}
