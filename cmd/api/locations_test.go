package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitspot/internal/geo"
	"fitspot/internal/region"
	"fitspot/internal/store"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	results []geo.Location
	queries []string
}

func (s *stubResolver) Search(_ context.Context, query string) []geo.Location {
	s.queries = append(s.queries, query)
	return s.results
}

func newTestApp(resolver locationSearcher) *application {
	return &application{
		logger:          zap.NewNop().Sugar(),
		resolver:        resolver,
		regions:         region.DefaultCatalog(),
		recentLocations: cache.New(time.Hour, time.Hour),
	}
}

func TestSearchLocationsHandler(t *testing.T) {
	t.Run("missing query is a bad request", func(t *testing.T) {
		app := newTestApp(&stubResolver{})

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/search", nil)
		rr := httptest.NewRecorder()
		app.searchLocationsHandler(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns resolver results", func(t *testing.T) {
		resolver := &stubResolver{results: []geo.Location{
			{ID: "relation-1", Name: "London", Type: geo.PlaceCity},
			{ID: "relation-2", Name: "Londonderry", Type: geo.PlaceCity},
		}}
		app := newTestApp(resolver)

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/search?q=london", nil)
		rr := httptest.NewRecorder()
		app.searchLocationsHandler(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, []string{"london"}, resolver.queries)

		var body struct {
			Data []geo.Location `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Data, 2)
		assert.Equal(t, "London", body.Data[0].Name)
	})

	t.Run("no matches yields an empty list, not null", func(t *testing.T) {
		app := newTestApp(&stubResolver{results: nil})

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/search?q=zzzz", nil)
		rr := httptest.NewRecorder()
		app.searchLocationsHandler(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
	})
}

func TestRecentLocationsHandlers(t *testing.T) {
	withUser := func(r *http.Request, userID int64) *http.Request {
		user := &store.User{ID: userID}
		return r.WithContext(context.WithValue(r.Context(), userCtx, user))
	}

	saveRecent := func(t *testing.T, app *application, userID int64, loc geo.Location) {
		t.Helper()

		payload, err := json.Marshal(loc)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/locations/recent", bytes.NewReader(payload))
		rr := httptest.NewRecorder()
		app.saveRecentLocationHandler(rr, withUser(req, userID))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	t.Run("empty before anything is saved", func(t *testing.T) {
		app := newTestApp(&stubResolver{})

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/recent", nil)
		rr := httptest.NewRecorder()
		app.recentLocationsHandler(rr, withUser(req, 7))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
	})

	t.Run("saved locations come back newest first, deduplicated", func(t *testing.T) {
		app := newTestApp(&stubResolver{})

		saveRecent(t, app, 7, geo.Location{ID: "node-1", Name: "Lisbon"})
		saveRecent(t, app, 7, geo.Location{ID: "node-2", Name: "Porto"})
		saveRecent(t, app, 7, geo.Location{ID: "node-1", Name: "Lisbon"})

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/recent", nil)
		rr := httptest.NewRecorder()
		app.recentLocationsHandler(rr, withUser(req, 7))

		var body struct {
			Data []geo.Location `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Data, 2)
		assert.Equal(t, "Lisbon", body.Data[0].Name)
		assert.Equal(t, "Porto", body.Data[1].Name)
	})

	t.Run("recent list is capped", func(t *testing.T) {
		app := newTestApp(&stubResolver{})

		for i := 0; i < maxRecentLocations+3; i++ {
			saveRecent(t, app, 7, geo.Location{
				ID:   "node-" + string(rune('a'+i)),
				Name: "Place " + string(rune('A'+i)),
			})
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/recent", nil)
		rr := httptest.NewRecorder()
		app.recentLocationsHandler(rr, withUser(req, 7))

		var body struct {
			Data []geo.Location `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Len(t, body.Data, maxRecentLocations)
	})

	t.Run("lists are per user", func(t *testing.T) {
		app := newTestApp(&stubResolver{})

		saveRecent(t, app, 7, geo.Location{ID: "node-1", Name: "Lisbon"})

		req := httptest.NewRequest(http.MethodGet, "/v1/locations/recent", nil)
		rr := httptest.NewRecorder()
		app.recentLocationsHandler(rr, withUser(req, 8))

		assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
	})

	t.Run("rejects a location without an id", func(t *testing.T) {
		app := newTestApp(&stubResolver{})

		req := httptest.NewRequest(http.MethodPost, "/v1/locations/recent", bytes.NewReader([]byte(`{"name":"Lisbon","type":"city"}`)))
		rr := httptest.NewRecorder()
		app.saveRecentLocationHandler(rr, withUser(req, 7))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
