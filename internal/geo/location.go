package geo

// PlaceType classifies how specific a resolved place is.
type PlaceType string

const (
	PlaceCity    PlaceType = "city"
	PlaceRegion  PlaceType = "region"
	PlaceCountry PlaceType = "country"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point is inside the WGS84 value range.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// ParentPlace is a value copy of the broader place a location belongs to,
// e.g. "Oxfordshire, United Kingdom" for Oxford. It is never a live
// reference into another Location.
type ParentPlace struct {
	Name string    `json:"name"`
	Type PlaceType `json:"type"`
}

// Location is one resolved place-search candidate. Instances are created per
// search call and are not persisted here.
type Location struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        PlaceType    `json:"type"`
	Parent      *ParentPlace `json:"parent,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}
