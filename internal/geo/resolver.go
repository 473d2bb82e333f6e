package geo

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// minQueryLen is the shortest query worth sending to the geocoder.
	minQueryLen = 2
	// maxCandidates is how many raw candidates we request from the provider.
	maxCandidates = 20
	// maxResults caps the list handed back to the caller.
	maxResults = 10
	// minScore is the relevance cutoff; candidates at or below it are dropped.
	minScore = 0.2
	// scoreEpsilon is the score distance under which two candidates count as
	// tied and the shorter name wins. Kept as-is; reranking depends on it.
	scoreEpsilon = 0.1
)

// Resolver turns free-text queries into short relevance-ranked location
// lists. It holds no state between calls and is safe for concurrent use.
type Resolver struct {
	geocoder Geocoder
	logger   *zap.SugaredLogger
}

func NewResolver(geocoder Geocoder, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		logger:   logger,
	}
}

type scoredLocation struct {
	loc   Location
	score float64
}

// Search resolves query into at most ten candidate locations, best first.
// Queries under two characters return nil without touching the network.
// Provider failures are logged and surface as an empty list, never as an
// error: a type-ahead box degrades to "no suggestions", not to a crash.
func (r *Resolver) Search(ctx context.Context, query string) []Location {
	if utf8.RuneCountInString(query) < minQueryLen {
		return nil
	}

	places, err := r.geocoder.Search(ctx, query, maxCandidates)
	if err != nil {
		r.logger.Warnw("location search failed", "query", query, "error", err)
		return nil
	}

	ranked := make([]scoredLocation, 0, len(places))
	for _, p := range places {
		loc, ok := locationFromPlace(p)
		if !ok {
			continue
		}
		score := Similarity(loc.Name, query)
		if score <= minScore {
			continue
		}
		ranked = append(ranked, scoredLocation{loc: loc, score: score})
	}

	// Near-equal scores tie-break on name length, preferring the more
	// concise name. The comparator is intentionally pairwise: chains of
	// near-ties are resolved in encounter order, not by a total order.
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if math.Abs(a.score-b.score) <= scoreEpsilon {
			return len(a.loc.Name) < len(b.loc.Name)
		}
		return a.score > b.score
	})

	out := make([]Location, 0, maxResults)
	seen := make(map[string]struct{}, len(ranked))
	for _, c := range ranked {
		key := dedupKey(c.loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c.loc)
		if len(out) == maxResults {
			break
		}
	}
	return out
}

func dedupKey(loc Location) string {
	key := normalizeForMatch(loc.Name)
	if loc.Parent != nil {
		key += "|" + normalizeForMatch(loc.Parent.Name)
	}
	return key
}

// locationFromPlace normalizes one raw geocoder record. The display name is
// preferred in order city, town, first comma-segment of the full display
// name; records yielding no name at all are skipped.
func locationFromPlace(p Place) (Location, bool) {
	var name string
	if p.Address != nil {
		switch {
		case p.Address.City != "":
			name = p.Address.City
		case p.Address.Town != "":
			name = p.Address.Town
		}
	}
	if name == "" {
		name = strings.TrimSpace(strings.SplitN(p.DisplayName, ",", 2)[0])
	}
	if name == "" {
		return Location{}, false
	}

	loc := Location{
		ID:   p.OSMType + "-" + strconv.FormatInt(p.PlaceID, 10),
		Name: name,
		Type: placeType(p),
	}

	if p.Address != nil {
		parts := make([]string, 0, 2)
		if p.Address.State != "" {
			parts = append(parts, p.Address.State)
		}
		if p.Address.Country != "" {
			parts = append(parts, p.Address.Country)
		}
		if len(parts) > 0 {
			parentType := PlaceCountry
			if p.Address.State != "" {
				parentType = PlaceRegion
			}
			loc.Parent = &ParentPlace{
				Name: strings.Join(parts, ", "),
				Type: parentType,
			}
		}
	}

	if lat, err := strconv.ParseFloat(p.Lat, 64); err == nil {
		if lon, err := strconv.ParseFloat(p.Lon, 64); err == nil {
			c := Coordinates{Latitude: lat, Longitude: lon}
			if c.Valid() {
				loc.Coordinates = &c
			}
		}
	}

	return loc, true
}

func placeType(p Place) PlaceType {
	if p.Address == nil {
		return PlaceCity
	}
	switch {
	case p.Address.City != "" || p.Address.Town != "":
		return PlaceCity
	case p.Address.State != "":
		return PlaceRegion
	case p.Address.Country != "":
		return PlaceCountry
	}
	return PlaceCity
}
