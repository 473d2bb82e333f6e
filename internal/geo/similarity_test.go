package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForMatch(t *testing.T) {
	t.Run("lowercases and trims", func(t *testing.T) {
		assert.Equal(t, "oxford", normalizeForMatch("  Oxford "))
	})

	t.Run("strips diacritics", func(t *testing.T) {
		assert.Equal(t, "sao paulo", normalizeForMatch("São Paulo"))
		assert.Equal(t, "munchen", normalizeForMatch("München"))
	})

	t.Run("strips punctuation", func(t *testing.T) {
		assert.Equal(t, "stannes", normalizeForMatch("St.-Anne's!"))
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, s := range []string{"São Paulo", "  Oxford ", "Kathmandú!", "a-b-c 42"} {
			once := normalizeForMatch(s)
			assert.Equal(t, once, normalizeForMatch(once), "normalize(normalize(%q))", s)
		}
	})
}

func TestSimilarity(t *testing.T) {
	t.Run("identical strings score one", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("Oxford", "Oxford"))
		assert.Equal(t, 1.0, Similarity("São Paulo", "sao paulo"))
	})

	t.Run("containment scores point eight", func(t *testing.T) {
		assert.Equal(t, 0.8, Similarity("Oxford", "Oxfordshire"))
		assert.Equal(t, 0.8, Similarity("New York", "York"))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"Oxford", "Oxfrd"},
			{"London", "Londres"},
			{"Kathmandu", "Pokhara"},
		}
		for _, p := range pairs {
			assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
		}
	})

	t.Run("bigram overlap for misspellings", func(t *testing.T) {
		// oxfrd {ox,xf,fr,rd} vs oxford {ox,xf,fo,or,rd}: 3 shared of 6.
		assert.InDelta(t, 0.5, Similarity("Oxfrd", "Oxford"), 1e-9)
		assert.Greater(t, Similarity("Oxfrd", "Oxford"), 0.2)
	})

	t.Run("unrelated strings score near zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("Oslo", "Kathmandu"))
	})

	t.Run("single characters score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("a", "b"))
	})
}
