package region

import "strings"

// Catalog holds the static region configuration and the country-to-region
// lookup used when a region is inferred from a resolved location.
type Catalog struct {
	regions   []Settings
	byID      map[string]int
	byCountry map[string]string
}

// DefaultCatalog returns the regions the marketplace currently operates in.
func DefaultCatalog() *Catalog {
	regions := []Settings{
		{
			ID: "uk", Name: "United Kingdom",
			Currency: "GBP", CurrencyLocale: "en-GB", DateLocale: "en-GB",
			UseMetric: true, DistanceUnit: "km", TemperatureUnit: "celsius",
			Bounds: &Bounds{North: 60.9, South: 49.8, East: 1.8, West: -8.7},
		},
		{
			ID: "us", Name: "United States",
			Currency: "USD", CurrencyLocale: "en-US", DateLocale: "en-US",
			UseMetric: false, DistanceUnit: "mi", TemperatureUnit: "fahrenheit",
			Bounds: &Bounds{North: 49.4, South: 24.4, East: -66.9, West: -125.0},
		},
		{
			ID: "de", Name: "Germany",
			Currency: "EUR", CurrencyLocale: "de-DE", DateLocale: "de-DE",
			UseMetric: true, DistanceUnit: "km", TemperatureUnit: "celsius",
			Bounds: &Bounds{North: 55.1, South: 47.3, East: 15.0, West: 5.9},
		},
		{
			ID: "pt", Name: "Portugal",
			Currency: "EUR", CurrencyLocale: "pt-PT", DateLocale: "pt-PT",
			UseMetric: true, DistanceUnit: "km", TemperatureUnit: "celsius",
			Bounds: &Bounds{North: 42.2, South: 36.9, East: -6.2, West: -9.5},
		},
		{
			ID: "np", Name: "Nepal",
			Currency: "NPR", CurrencyLocale: "ne-NP", DateLocale: "ne-NP",
			UseMetric: true, DistanceUnit: "km", TemperatureUnit: "celsius",
			Bounds: &Bounds{North: 30.4, South: 26.3, East: 88.2, West: 80.0},
		},
	}

	byCountry := map[string]string{
		"united kingdom": "uk",
		"england":        "uk",
		"scotland":       "uk",
		"wales":          "uk",
		"united states":  "us",
		"germany":        "de",
		"deutschland":    "de",
		"portugal":       "pt",
		"nepal":          "np",
	}

	return NewCatalog(regions, byCountry)
}

func NewCatalog(regions []Settings, byCountry map[string]string) *Catalog {
	byID := make(map[string]int, len(regions))
	for i, r := range regions {
		byID[r.ID] = i
	}
	return &Catalog{
		regions:   regions,
		byID:      byID,
		byCountry: byCountry,
	}
}

// All returns every configured region.
func (c *Catalog) All() []Settings {
	out := make([]Settings, len(c.regions))
	copy(out, c.regions)
	return out
}

// ByID looks a region up by its identifier.
func (c *Catalog) ByID(id string) (Settings, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Settings{}, false
	}
	return c.regions[i], true
}

// ForCountry maps a country name, as returned by the geocoder, onto a region.
// Matching is case-insensitive.
func (c *Catalog) ForCountry(country string) (Settings, bool) {
	id, ok := c.byCountry[strings.ToLower(strings.TrimSpace(country))]
	if !ok {
		return Settings{}, false
	}
	return c.ByID(id)
}
