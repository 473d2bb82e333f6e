package main

import (
	"fmt"
	"net/http"

	"fitspot/internal/geo"

	"github.com/patrickmn/go-cache"
)

// Recent searches are a convenience, not a record; a short list is plenty.
const maxRecentLocations = 5

// searchLocationsHandler godoc
//
//	@Summary		Search locations
//	@Description	Resolves a free-text place query into ranked location
//	@Description	suggestions. Lookup failures yield an empty list rather
//	@Description	than an error.
//	@Tags			locations
//	@Produce		json
//	@Param			q	query		string	true	"Search query"
//	@Success		200	{array}		geo.Location
//	@Failure		400	{object}	error
//	@Router			/locations/search [get]
func (app *application) searchLocationsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		app.badRequestResponse(w, r, fmt.Errorf("missing query parameter q"))
		return
	}

	locations := app.resolver.Search(r.Context(), query)
	if locations == nil {
		locations = []geo.Location{}
	}

	if err := app.jsonResponse(w, http.StatusOK, locations); err != nil {
		app.internalServerError(w, r, err)
	}
}

// recentLocationsHandler godoc
//
//	@Summary		Recently picked locations
//	@Tags			locations
//	@Produce		json
//	@Success		200	{array}	geo.Location
//	@Security		ApiKeyAuth
//	@Router			/locations/recent [get]
func (app *application) recentLocationsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	recents := []geo.Location{}
	if cached, ok := app.recentLocations.Get(recentKey(user.ID)); ok {
		recents = cached.([]geo.Location)
	}

	if err := app.jsonResponse(w, http.StatusOK, recents); err != nil {
		app.internalServerError(w, r, err)
	}
}

// saveRecentLocationHandler godoc
//
//	@Summary		Remember a picked location
//	@Description	Puts a location at the front of the user's recent list,
//	@Description	deduplicated by ID
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		geo.Location	true	"Picked location"
//	@Success		201		{array}		geo.Location
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/locations/recent [post]
func (app *application) saveRecentLocationHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var loc geo.Location
	if err := readJSON(w, r, &loc); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if loc.ID == "" || loc.Name == "" {
		app.badRequestResponse(w, r, fmt.Errorf("location id and name are required"))
		return
	}

	var recents []geo.Location
	if cached, ok := app.recentLocations.Get(recentKey(user.ID)); ok {
		recents = cached.([]geo.Location)
	}

	updated := []geo.Location{loc}
	for _, rl := range recents {
		if rl.ID == loc.ID {
			continue
		}
		updated = append(updated, rl)
		if len(updated) == maxRecentLocations {
			break
		}
	}

	app.recentLocations.Set(recentKey(user.ID), updated, cache.DefaultExpiration)

	if err := app.jsonResponse(w, http.StatusCreated, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}

func recentKey(userID int64) string {
	return fmt.Sprintf("recent-locations:%d", userID)
}
