package region

import "fitspot/internal/geo"

// Bounds is an axis-aligned latitude/longitude rectangle.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// WellFormed reports whether the rectangle encloses any area at all. A
// rectangle with north at or below south, or with zero width, never matches.
func (b Bounds) WellFormed() bool {
	return b.North > b.South && b.East != b.West
}

// Contains reports whether the point falls inside the rectangle, inclusive on
// all four sides. An inverted rectangle matches nothing; it is never wrapped.
func (b Bounds) Contains(c geo.Coordinates) bool {
	return c.Latitude >= b.South && c.Latitude <= b.North &&
		c.Longitude >= b.West && c.Longitude <= b.East
}

// Settings is a user-facing geographic, currency and locale configuration.
// Selected by the user or inferred from a resolved location's country; read
// only everywhere else.
type Settings struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Currency        string  `json:"currency"`
	CurrencyLocale  string  `json:"currency_locale"`
	DateLocale      string  `json:"date_locale"`
	UseMetric       bool    `json:"use_metric"`
	DistanceUnit    string  `json:"distance_unit"`
	TemperatureUnit string  `json:"temperature_unit"`
	Bounds          *Bounds `json:"bounds,omitempty"`
}
