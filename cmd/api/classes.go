package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitspot/internal/geo"
	"fitspot/internal/region"
	"fitspot/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateClassPayload struct {
	Title           string   `json:"title" validate:"required,max=120"`
	Description     string   `json:"description" validate:"required,max=2000"`
	Tags            []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
	StartTime       string   `json:"start_time" validate:"required"`
	EndTime         string   `json:"end_time" validate:"required"`
	MaxParticipants int      `json:"max_participants" validate:"required,min=1,max=500"`
	Type            string   `json:"type" validate:"required,oneof=group personal"`
	Level           string   `json:"level" validate:"required,oneof=beginner intermediate advanced all"`
	LocationName    string   `json:"location_name" validate:"required,max=120"`
	City            string   `json:"city" validate:"required,max=80"`
	Address         string   `json:"address" validate:"required,max=200"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Price           float64  `json:"price" validate:"min=0"`
}

// createClassHandler godoc
//
//	@Summary		Create a class
//	@Description	Publishes a new class with the authenticated user as instructor
//	@Tags			classes
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateClassPayload	true	"Class details"
//	@Success		201		{object}	store.Class
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/classes [post]
func (app *application) createClassHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload CreateClassPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	startTime, err := time.Parse(time.RFC3339, payload.StartTime)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid start_time: %w", err))
		return
	}
	endTime, err := time.Parse(time.RFC3339, payload.EndTime)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid end_time: %w", err))
		return
	}
	if !endTime.After(startTime) {
		app.badRequestResponse(w, r, fmt.Errorf("end_time must be after start_time"))
		return
	}

	var coords *geo.Coordinates
	if payload.Latitude != nil && payload.Longitude != nil {
		coords = &geo.Coordinates{Latitude: *payload.Latitude, Longitude: *payload.Longitude}
		if !coords.Valid() {
			app.badRequestResponse(w, r, fmt.Errorf("coordinates out of range"))
			return
		}
	}

	class := &store.Class{
		Title:           payload.Title,
		Description:     payload.Description,
		Tags:            payload.Tags,
		StartTime:       startTime,
		EndTime:         endTime,
		MaxParticipants: payload.MaxParticipants,
		Type:            store.ClassType(payload.Type),
		Level:           store.ClassLevel(payload.Level),
		Location: store.ClassLocation{
			Name:        payload.LocationName,
			City:        payload.City,
			Address:     payload.Address,
			Coordinates: coords,
		},
		Price:      payload.Price,
		Instructor: store.InstructorProfile{ID: user.ID},
	}

	if err := app.store.Classes.Create(r.Context(), class); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, class); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getClassHandler godoc
//
//	@Summary		Get a class
//	@Tags			classes
//	@Produce		json
//	@Param			classID	path		int	true	"Class ID"
//	@Success		200		{object}	store.Class
//	@Failure		404		{object}	error
//	@Router			/classes/{classID} [get]
func (app *application) getClassHandler(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(chi.URLParam(r, "classID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid class id"))
		return
	}

	class, err := app.store.Classes.GetByID(r.Context(), classID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, class); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listClassesHandler godoc
//
//	@Summary		List classes
//	@Description	Lists upcoming classes inside the selected region, optionally
//	@Description	narrowed by search term, type, level and price range. Without
//	@Description	a known region the listing is empty.
//	@Tags			classes
//	@Produce		json
//	@Param			region		query		string	false	"Region ID"
//	@Param			q			query		string	false	"Search term"
//	@Param			type		query		string	false	"Class type (group, personal)"
//	@Param			level		query		string	false	"Class level"
//	@Param			min_price	query		number	false	"Minimum price, inclusive"
//	@Param			max_price	query		number	false	"Maximum price, inclusive"
//	@Success		200			{array}		store.Class
//	@Failure		400			{object}	error
//	@Router			/classes [get]
func (app *application) listClassesHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := store.DefaultClassFilters().Parse(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// An unknown or missing region means no inventory is shown. Region
	// settings with no bounds fall through to the same empty result inside
	// the filter.
	var rs region.Settings
	if id := r.URL.Query().Get("region"); id != "" {
		rs, _ = app.regions.ByID(id)
	}

	classes, err := app.store.Classes.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	visible := store.FilterClasses(classes, rs, filters)

	if err := app.jsonResponse(w, http.StatusOK, visible); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadClassPhotoHandler godoc
//
//	@Summary		Upload a class photo
//	@Tags			classes
//	@Accept			mpfd
//	@Produce		json
//	@Param			classID	path		int		true	"Class ID"
//	@Param			photo	formData	file	true	"Image file"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/classes/{classID}/photo [post]
func (app *application) uploadClassPhotoHandler(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(chi.URLParam(r, "classID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid class id"))
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("could not parse form: %w", err))
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("missing photo file: %w", err))
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("class-%d", classID)
	url, err := app.uploadImage(r.Context(), file, classPhotoFolder, publicID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Classes.SetImageURL(r.Context(), classID, url); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"image_url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}
