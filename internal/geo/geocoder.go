package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Place is the raw record shape returned by a Nominatim-compatible
// place-search endpoint. Any provider returning this shape can be used.
type Place struct {
	PlaceID     int64         `json:"place_id"`
	OSMType     string        `json:"osm_type"`
	Lat         string        `json:"lat"`
	Lon         string        `json:"lon"`
	DisplayName string        `json:"display_name"`
	Address     *PlaceAddress `json:"address,omitempty"`
}

// PlaceAddress carries the address details we care about. Nominatim returns
// either city or town depending on the place size.
type PlaceAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Geocoder searches free text against a place-search provider.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// NominatimClient talks to a Nominatim-compatible HTTP endpoint. Timeouts are
// whatever the supplied http.Client enforces; the client itself adds none.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimClient(baseURL, userAgent string, client *http.Client) *NominatimClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    client,
	}
}

func (c *NominatimClient) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder url: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("accept-language", "en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}
	return places, nil
}
