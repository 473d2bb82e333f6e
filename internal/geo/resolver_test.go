package geo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Place), args.Error(1)
}

func newTestResolver() (*Resolver, *MockGeocoder) {
	geocoder := new(MockGeocoder)
	return NewResolver(geocoder, zap.NewNop().Sugar()), geocoder
}

func TestResolverShortQuery(t *testing.T) {
	resolver, geocoder := newTestResolver()

	for _, q := range []string{"", "a", "x"} {
		assert.Empty(t, resolver.Search(context.Background(), q))
	}
	geocoder.AssertNotCalled(t, "Search")
}

func TestResolverGeocoderFailure(t *testing.T) {
	resolver, geocoder := newTestResolver()
	geocoder.On("Search", mock.Anything, "london", 20).
		Return(nil, errors.New("connection refused")).Once()

	locs := resolver.Search(context.Background(), "london")

	assert.Empty(t, locs)
	geocoder.AssertExpectations(t)
}

func TestResolverMisspelledQuery(t *testing.T) {
	resolver, geocoder := newTestResolver()
	geocoder.On("Search", mock.Anything, "Oxfrd", 20).Return([]Place{
		{
			PlaceID: 1, OSMType: "relation",
			Lat: "51.752", Lon: "-1.2577",
			DisplayName: "Oxford, Oxfordshire, England, United Kingdom",
			Address:     &PlaceAddress{City: "Oxford", State: "England", Country: "United Kingdom"},
		},
		{
			PlaceID: 2, OSMType: "node",
			Lat: "27.7", Lon: "85.3",
			DisplayName: "Kathmandu, Nepal",
			Address:     &PlaceAddress{City: "Kathmandu", Country: "Nepal"},
		},
	}, nil).Once()

	locs := resolver.Search(context.Background(), "Oxfrd")

	require.Len(t, locs, 1)
	assert.Equal(t, "Oxford", locs[0].Name)
	assert.Equal(t, PlaceCity, locs[0].Type)
	require.NotNil(t, locs[0].Parent)
	assert.Equal(t, "England, United Kingdom", locs[0].Parent.Name)
	require.NotNil(t, locs[0].Coordinates)
	assert.InDelta(t, 51.752, locs[0].Coordinates.Latitude, 1e-9)
	geocoder.AssertExpectations(t)
}

func TestResolverTieBreakPrefersShorterName(t *testing.T) {
	resolver, geocoder := newTestResolver()
	// Both candidates contain the query and score 0.8; the shorter name must
	// surface first even though the longer one came back first.
	geocoder.On("Search", mock.Anything, "oxford", 20).Return([]Place{
		{PlaceID: 1, Lat: "1", Lon: "1", Address: &PlaceAddress{City: "Oxford Junction", Country: "United States"}},
		{PlaceID: 2, Lat: "2", Lon: "2", Address: &PlaceAddress{City: "Oxford Falls", Country: "Australia"}},
	}, nil).Once()

	locs := resolver.Search(context.Background(), "oxford")

	require.Len(t, locs, 2)
	assert.Equal(t, "Oxford Falls", locs[0].Name)
	assert.Equal(t, "Oxford Junction", locs[1].Name)
}

func TestResolverExactBeatsNearMiss(t *testing.T) {
	resolver, geocoder := newTestResolver()
	// 1.0 vs 0.8 is outside the tie window, so score ordering wins even
	// though the exact name is longer.
	geocoder.On("Search", mock.Anything, "springfield", 20).Return([]Place{
		{PlaceID: 1, Lat: "1", Lon: "1", Address: &PlaceAddress{City: "Spring", Country: "United States"}},
		{PlaceID: 2, Lat: "2", Lon: "2", Address: &PlaceAddress{City: "Springfield", Country: "United States"}},
	}, nil).Once()

	locs := resolver.Search(context.Background(), "springfield")

	require.NotEmpty(t, locs)
	assert.Equal(t, "Springfield", locs[0].Name)
}

func TestResolverDropsIrrelevantCandidates(t *testing.T) {
	resolver, geocoder := newTestResolver()
	geocoder.On("Search", mock.Anything, "oslo", 20).Return([]Place{
		{PlaceID: 1, Lat: "59.9", Lon: "10.7", Address: &PlaceAddress{City: "Oslo", Country: "Norway"}},
		{PlaceID: 2, Lat: "27.7", Lon: "85.3", Address: &PlaceAddress{City: "Kathmandu", Country: "Nepal"}},
	}, nil).Once()

	locs := resolver.Search(context.Background(), "oslo")

	require.Len(t, locs, 1)
	assert.Equal(t, "Oslo", locs[0].Name)
}

func TestResolverTruncatesToTen(t *testing.T) {
	resolver, geocoder := newTestResolver()
	places := make([]Place, 0, 14)
	for i := 0; i < 14; i++ {
		places = append(places, Place{
			PlaceID: int64(i + 1),
			Lat:     "40", Lon: "-75",
			Address: &PlaceAddress{City: "Springfield", State: fmt.Sprintf("State %02d", i), Country: "United States"},
		})
	}
	geocoder.On("Search", mock.Anything, "springfield", 20).Return(places, nil).Once()

	locs := resolver.Search(context.Background(), "springfield")

	assert.Len(t, locs, 10)
}

func TestResolverDeduplicatesCandidates(t *testing.T) {
	resolver, geocoder := newTestResolver()
	geocoder.On("Search", mock.Anything, "oxford", 20).Return([]Place{
		{PlaceID: 1, Lat: "51.752", Lon: "-1.2577", Address: &PlaceAddress{City: "Oxford", State: "England", Country: "United Kingdom"}},
		{PlaceID: 2, Lat: "51.751", Lon: "-1.2580", Address: &PlaceAddress{City: "Oxford", State: "England", Country: "United Kingdom"}},
	}, nil).Once()

	locs := resolver.Search(context.Background(), "oxford")

	assert.Len(t, locs, 1)
}

func TestLocationFromPlace(t *testing.T) {
	t.Run("falls back to display name segment", func(t *testing.T) {
		loc, ok := locationFromPlace(Place{
			PlaceID:     7,
			OSMType:     "node",
			Lat:         "48.85",
			Lon:         "2.35",
			DisplayName: "Paris, Île-de-France, France",
		})
		require.True(t, ok)
		assert.Equal(t, "Paris", loc.Name)
		assert.Equal(t, "node-7", loc.ID)
	})

	t.Run("skips records without any name", func(t *testing.T) {
		_, ok := locationFromPlace(Place{PlaceID: 8, DisplayName: ""})
		assert.False(t, ok)
	})

	t.Run("drops unparseable coordinates", func(t *testing.T) {
		loc, ok := locationFromPlace(Place{
			PlaceID: 9, Lat: "not-a-number", Lon: "2.35",
			DisplayName: "Paris",
		})
		require.True(t, ok)
		assert.Nil(t, loc.Coordinates)
	})

	t.Run("drops out-of-range coordinates", func(t *testing.T) {
		loc, ok := locationFromPlace(Place{
			PlaceID: 10, Lat: "95.0", Lon: "2.35",
			DisplayName: "Nowhere",
		})
		require.True(t, ok)
		assert.Nil(t, loc.Coordinates)
	})

	t.Run("parent joins only present fields", func(t *testing.T) {
		loc, ok := locationFromPlace(Place{
			PlaceID: 11, Lat: "27.7", Lon: "85.3",
			Address: &PlaceAddress{City: "Kathmandu", Country: "Nepal"},
		})
		require.True(t, ok)
		require.NotNil(t, loc.Parent)
		assert.Equal(t, "Nepal", loc.Parent.Name)
		assert.Equal(t, PlaceCountry, loc.Parent.Type)
	})
}
