package store

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fitspot/internal/region"
)

// Default price slider range. Leaving the range untouched keeps the price
// predicate a no-op.
const (
	MinPriceDefault = 0
	MaxPriceDefault = 100
)

// ClassFilters is the full filter state for a class listing.
type ClassFilters struct {
	Term     string       // free-text search term
	Types    []ClassType  // facet: keep classes whose type is in the set
	Levels   []ClassLevel // facet: keep classes whose level is in the set
	MinPrice float64
	MaxPrice float64
}

// DefaultClassFilters returns the filter state of an untouched listing page.
func DefaultClassFilters() ClassFilters {
	return ClassFilters{
		MinPrice: MinPriceDefault,
		MaxPrice: MaxPriceDefault,
	}
}

// Parse extracts filter values from the request URL query parameters.
func (f ClassFilters) Parse(r *http.Request) (ClassFilters, error) {
	params := r.URL.Query()

	if term := params.Get("q"); term != "" {
		f.Term = term
	}

	for _, t := range params["type"] {
		ct := ClassType(t)
		switch ct {
		case ClassGroup, ClassPersonal:
			f.Types = append(f.Types, ct)
		default:
			return f, fmt.Errorf("invalid type value: %s", t)
		}
	}

	for _, l := range params["level"] {
		cl := ClassLevel(l)
		switch cl {
		case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
			f.Levels = append(f.Levels, cl)
		default:
			return f, fmt.Errorf("invalid level value: %s", l)
		}
	}

	if minStr := params.Get("min_price"); minStr != "" {
		minPrice, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid min_price: %w", err)
		}
		f.MinPrice = minPrice
	}

	if maxStr := params.Get("max_price"); maxStr != "" {
		maxPrice, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid max_price: %w", err)
		}
		f.MaxPrice = maxPrice
	}

	return f, nil
}

// FilterClasses returns the subset of classes visible for the given region
// and filter state. It is a pure function: the result preserves the input
// order and repeated calls with the same inputs yield the same output.
//
// A region without well-formed bounds yields an empty result on purpose: no
// inventory is surfaced until the user has picked a region.
func FilterClasses(classes []Class, rs region.Settings, f ClassFilters) []Class {
	out := make([]Class, 0, len(classes))

	if rs.Bounds == nil || !rs.Bounds.WellFormed() {
		return out
	}

	for _, c := range classes {
		if !inBounds(c, *rs.Bounds) {
			continue
		}
		if !matchesTerm(c, f.Term) {
			continue
		}
		if !matchesType(c, f.Types) {
			continue
		}
		if !matchesLevel(c, f.Levels) {
			continue
		}
		if c.Price < f.MinPrice || c.Price > f.MaxPrice {
			continue
		}
		out = append(out, c)
	}
	return out
}

// inBounds requires coordinates: a class without them is invisible whenever
// bounds filtering is active.
func inBounds(c Class, b region.Bounds) bool {
	return c.Location.Coordinates != nil && b.Contains(*c.Location.Coordinates)
}

// matchesTerm does a case-insensitive substring match against the title,
// description, instructor name, location name and tags. An empty term
// matches everything.
func matchesTerm(c Class, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	fields := []string{c.Title, c.Description, c.Instructor.Name, c.Location.Name}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesType(c Class, types []ClassType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if c.Type == t {
			return true
		}
	}
	return false
}

func matchesLevel(c Class, levels []ClassLevel) bool {
	if len(levels) == 0 {
		return true
	}
	for _, l := range levels {
		if c.Level == l {
			return true
		}
	}
	return false
}
