package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitspot/internal/geo"
)

func TestBoundsContains(t *testing.T) {
	b := Bounds{North: 52, South: 51, East: 0, West: -1}

	t.Run("inside", func(t *testing.T) {
		assert.True(t, b.Contains(geo.Coordinates{Latitude: 51.5, Longitude: -0.5}))
	})

	t.Run("inclusive on all edges", func(t *testing.T) {
		assert.True(t, b.Contains(geo.Coordinates{Latitude: 52, Longitude: -0.5}))
		assert.True(t, b.Contains(geo.Coordinates{Latitude: 51, Longitude: -0.5}))
		assert.True(t, b.Contains(geo.Coordinates{Latitude: 51.5, Longitude: 0}))
		assert.True(t, b.Contains(geo.Coordinates{Latitude: 51.5, Longitude: -1}))
	})

	t.Run("outside", func(t *testing.T) {
		assert.False(t, b.Contains(geo.Coordinates{Latitude: 60, Longitude: 10}))
		assert.False(t, b.Contains(geo.Coordinates{Latitude: 51.5, Longitude: 0.01}))
	})

	t.Run("inverted rectangle matches nothing", func(t *testing.T) {
		inverted := Bounds{North: 51, South: 52, East: 0, West: -1}
		assert.False(t, inverted.Contains(geo.Coordinates{Latitude: 51.5, Longitude: -0.5}))
	})
}

func TestBoundsWellFormed(t *testing.T) {
	assert.True(t, Bounds{North: 52, South: 51, East: 0, West: -1}.WellFormed())
	assert.False(t, Bounds{North: 51, South: 52, East: 0, West: -1}.WellFormed())
	assert.False(t, Bounds{North: 51, South: 51, East: 0, West: -1}.WellFormed())
	assert.False(t, Bounds{North: 52, South: 51, East: -1, West: -1}.WellFormed())
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("by id", func(t *testing.T) {
		uk, ok := catalog.ByID("uk")
		require.True(t, ok)
		assert.Equal(t, "United Kingdom", uk.Name)
		require.NotNil(t, uk.Bounds)
		assert.True(t, uk.Bounds.WellFormed())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ok := catalog.ByID("atlantis")
		assert.False(t, ok)
	})

	t.Run("by country is case-insensitive", func(t *testing.T) {
		uk, ok := catalog.ForCountry("  United Kingdom ")
		require.True(t, ok)
		assert.Equal(t, "uk", uk.ID)

		uk, ok = catalog.ForCountry("england")
		require.True(t, ok)
		assert.Equal(t, "uk", uk.ID)
	})

	t.Run("unknown country", func(t *testing.T) {
		_, ok := catalog.ForCountry("Narnia")
		assert.False(t, ok)
	})

	t.Run("every region has usable bounds", func(t *testing.T) {
		for _, r := range catalog.All() {
			require.NotNil(t, r.Bounds, r.ID)
			assert.True(t, r.Bounds.WellFormed(), r.ID)
		}
	})
}
