package store

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitspot/internal/geo"
	"fitspot/internal/region"
)

func testRegion() region.Settings {
	return region.Settings{
		ID:   "test",
		Name: "Test Region",
		Bounds: &region.Bounds{
			North: 52, South: 51, East: 0, West: -1,
		},
	}
}

func classAt(id int64, lat, lon float64) Class {
	return Class{
		ID:    id,
		Title: "Morning Yoga",
		Type:  ClassGroup,
		Level: LevelAll,
		Price: 20,
		Location: ClassLocation{
			Name:        "Studio One",
			Coordinates: &geo.Coordinates{Latitude: lat, Longitude: lon},
		},
	}
}

func TestFilterClassesRegionBounds(t *testing.T) {
	inside := classAt(1, 51.5, -0.5)
	outside := classAt(2, 60, 10)

	t.Run("keeps only classes inside bounds", func(t *testing.T) {
		got := FilterClasses([]Class{inside, outside}, testRegion(), DefaultClassFilters())
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		edge := classAt(3, 52, 0)
		got := FilterClasses([]Class{edge}, testRegion(), DefaultClassFilters())
		assert.Len(t, got, 1)
	})

	t.Run("class without coordinates never passes", func(t *testing.T) {
		noCoords := classAt(4, 0, 0)
		noCoords.Location.Coordinates = nil
		got := FilterClasses([]Class{noCoords}, testRegion(), DefaultClassFilters())
		assert.Empty(t, got)
	})

	t.Run("missing bounds yields empty result", func(t *testing.T) {
		rs := testRegion()
		rs.Bounds = nil
		got := FilterClasses([]Class{inside}, rs, DefaultClassFilters())
		assert.Empty(t, got)
	})

	t.Run("inverted bounds yield zero matches", func(t *testing.T) {
		rs := testRegion()
		rs.Bounds = &region.Bounds{North: 51, South: 52, East: 0, West: -1}
		got := FilterClasses([]Class{inside}, rs, DefaultClassFilters())
		assert.Empty(t, got)
	})
}

func TestFilterClassesTerm(t *testing.T) {
	c := classAt(1, 51.5, -0.5)
	c.Title = "Sunrise Vinyasa"
	c.Description = "Flow session for early birds"
	c.Instructor.Name = "Maya Sharma"
	c.Location.Name = "Riverside Studio"
	c.Tags = []string{"yoga", "flexibility"}

	match := func(term string) bool {
		f := DefaultClassFilters()
		f.Term = term
		return len(FilterClasses([]Class{c}, testRegion(), f)) == 1
	}

	assert.True(t, match("vinyasa"), "title")
	assert.True(t, match("EARLY BIRDS"), "description, case-insensitive")
	assert.True(t, match("sharma"), "instructor name")
	assert.True(t, match("riverside"), "location name")
	assert.True(t, match("flex"), "tag substring")
	assert.False(t, match("pilates"), "no field matches")
}

func TestFilterClassesFacets(t *testing.T) {
	group := classAt(1, 51.5, -0.5)
	group.Type = ClassGroup
	group.Level = LevelBeginner

	personal := classAt(2, 51.5, -0.5)
	personal.Type = ClassPersonal
	personal.Level = LevelAdvanced

	classes := []Class{group, personal}

	t.Run("type facet", func(t *testing.T) {
		f := DefaultClassFilters()
		f.Types = []ClassType{ClassPersonal}
		got := FilterClasses(classes, testRegion(), f)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("level facet", func(t *testing.T) {
		f := DefaultClassFilters()
		f.Levels = []ClassLevel{LevelBeginner}
		got := FilterClasses(classes, testRegion(), f)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("empty facet set matches everything", func(t *testing.T) {
		got := FilterClasses(classes, testRegion(), DefaultClassFilters())
		assert.Len(t, got, 2)
	})

	t.Run("facets commute", func(t *testing.T) {
		typeFirst := DefaultClassFilters()
		typeFirst.Types = []ClassType{ClassGroup}
		intermediate := FilterClasses(classes, testRegion(), typeFirst)

		levelSecond := DefaultClassFilters()
		levelSecond.Levels = []ClassLevel{LevelBeginner}
		got := FilterClasses(intermediate, testRegion(), levelSecond)

		both := DefaultClassFilters()
		both.Types = []ClassType{ClassGroup}
		both.Levels = []ClassLevel{LevelBeginner}
		assert.Equal(t, FilterClasses(classes, testRegion(), both), got)

		// and in the other order
		levelFirst := FilterClasses(classes, testRegion(), levelSecond)
		assert.Equal(t, got, FilterClasses(levelFirst, testRegion(), typeFirst))
	})
}

func TestFilterClassesPriceRange(t *testing.T) {
	cheap := classAt(1, 51.5, -0.5)
	cheap.Price = 10
	mid := classAt(2, 51.5, -0.5)
	mid.Price = 50
	dear := classAt(3, 51.5, -0.5)
	dear.Price = 99

	classes := []Class{cheap, mid, dear}

	t.Run("range keeps only classes inside it", func(t *testing.T) {
		f := DefaultClassFilters()
		f.MinPrice = 20
		f.MaxPrice = 60
		got := FilterClasses(classes, testRegion(), f)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("inclusive at both boundaries", func(t *testing.T) {
		f := DefaultClassFilters()
		f.MinPrice = 10
		f.MaxPrice = 99
		got := FilterClasses(classes, testRegion(), f)
		assert.Len(t, got, 3)
	})

	t.Run("defaults are a no-op", func(t *testing.T) {
		got := FilterClasses(classes, testRegion(), DefaultClassFilters())
		assert.Len(t, got, 3)
	})
}

func TestFilterClassesIsStableAndDeterministic(t *testing.T) {
	classes := []Class{
		classAt(3, 51.1, -0.1),
		classAt(1, 51.2, -0.2),
		classAt(2, 51.3, -0.3),
	}

	first := FilterClasses(classes, testRegion(), DefaultClassFilters())
	second := FilterClasses(classes, testRegion(), DefaultClassFilters())

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	// output order equals input order
	assert.Equal(t, int64(3), first[0].ID)
	assert.Equal(t, int64(1), first[1].ID)
	assert.Equal(t, int64(2), first[2].ID)
}

func TestClassFiltersParse(t *testing.T) {
	t.Run("full query", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/v1/classes?q=yoga&type=group&level=beginner&level=all&min_price=15&max_price=80", nil)

		f, err := DefaultClassFilters().Parse(r)
		require.NoError(t, err)
		assert.Equal(t, "yoga", f.Term)
		assert.Equal(t, []ClassType{ClassGroup}, f.Types)
		assert.Equal(t, []ClassLevel{LevelBeginner, LevelAll}, f.Levels)
		assert.Equal(t, 15.0, f.MinPrice)
		assert.Equal(t, 80.0, f.MaxPrice)
	})

	t.Run("defaults survive empty query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/classes", nil)

		f, err := DefaultClassFilters().Parse(r)
		require.NoError(t, err)
		assert.Equal(t, float64(MinPriceDefault), f.MinPrice)
		assert.Equal(t, float64(MaxPriceDefault), f.MaxPrice)
		assert.Empty(t, f.Types)
		assert.Empty(t, f.Levels)
	})

	t.Run("rejects unknown facet values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/classes?type=crossfit", nil)
		_, err := DefaultClassFilters().Parse(r)
		assert.Error(t, err)
	})

	t.Run("rejects malformed prices", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/classes?min_price=abc", nil)
		_, err := DefaultClassFilters().Parse(r)
		assert.Error(t, err)
	})
}
