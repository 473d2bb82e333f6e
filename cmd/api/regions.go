package main

import (
	"fmt"
	"net/http"
)

// listRegionsHandler godoc
//
//	@Summary		List regions
//	@Description	All regions the marketplace operates in, with their locale
//	@Description	settings and map bounds
//	@Tags			regions
//	@Produce		json
//	@Success		200	{array}	region.Settings
//	@Router			/regions [get]
func (app *application) listRegionsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, app.regions.All()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// lookupRegionHandler godoc
//
//	@Summary		Look up a region
//	@Description	Maps a country name, as returned by location search, onto a
//	@Description	region
//	@Tags			regions
//	@Produce		json
//	@Param			country	query		string	true	"Country name"
//	@Success		200		{object}	region.Settings
//	@Failure		404		{object}	error
//	@Router			/regions/lookup [get]
func (app *application) lookupRegionHandler(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		app.badRequestResponse(w, r, fmt.Errorf("missing query parameter country"))
		return
	}

	rs, ok := app.regions.ForCountry(country)
	if !ok {
		app.notFoundResponse(w, r, fmt.Errorf("no region for country %q", country))
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rs); err != nil {
		app.internalServerError(w, r, err)
	}
}
