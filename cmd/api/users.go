package main

import (
	"errors"
	"fmt"
	"net/http"

	"fitspot/internal/store"

	"github.com/go-chi/chi/v5"
)

// activateUserHandler godoc
//
//	@Summary		Activate a user
//	@Description	Activates an account using the token from the welcome email
//	@Tags			users
//	@Produce		json
//	@Param			token	path		string	true	"Activation token"
//	@Success		204		{string}	string	"User activated"
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Router			/users/activate/{token} [put]
func (app *application) activateUserHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	err := app.store.Users.Activate(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusNoContent, ""); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateUserPayload struct {
	FirstName   *string  `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string  `json:"last_name" validate:"omitempty,max=100"`
	Phone       *string  `json:"phone" validate:"omitempty,min=7,max=20"`
	Bio         *string  `json:"bio" validate:"omitempty,max=500"`
	Specialties []string `json:"specialties" validate:"omitempty,max=10,dive,max=50"`
}

// updateUserHandler godoc
//
//	@Summary		Update profile
//	@Description	Applies a partial update to the authenticated user's profile
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateUserPayload	true	"Fields to update"
//	@Success		200		{string}	string	"profile updated"
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users [put]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	updates := map[string]interface{}{}
	if payload.FirstName != nil {
		updates["first_name"] = *payload.FirstName
	}
	if payload.LastName != nil {
		updates["last_name"] = *payload.LastName
	}
	if payload.Phone != nil {
		updates["phone"] = *payload.Phone
	}
	if payload.Bio != nil {
		updates["bio"] = *payload.Bio
	}
	if payload.Specialties != nil {
		updates["specialties"] = payload.Specialties
	}

	if len(updates) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no fields to update"))
		return
	}

	if err := app.store.Users.UpdateUser(r.Context(), user.ID, updates); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "profile updated"); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadProfilePictureHandler godoc
//
//	@Summary		Upload profile picture
//	@Description	Replaces the authenticated user's profile picture
//	@Tags			users
//	@Accept			mpfd
//	@Produce		json
//	@Param			profile_picture	formData	file	true	"Image file"
//	@Success		200				{object}	map[string]string
//	@Failure		400				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/profile-picture [post]
func (app *application) uploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("could not parse form: %w", err))
		return
	}

	file, _, err := r.FormFile("profile_picture")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("missing profile_picture file: %w", err))
		return
	}
	defer file.Close()

	ctx := r.Context()

	// Drop the old picture first so orphans don't pile up in storage.
	oldURL, err := app.store.Users.GetProfileUrl(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		app.internalServerError(w, r, err)
		return
	}
	if oldURL != "" {
		if err := app.deleteImage(ctx, oldURL); err != nil {
			app.logger.Warnw("failed to delete old profile picture", "user_id", user.ID, "error", err)
		}
	}

	publicID := fmt.Sprintf("user-%d", user.ID)
	url, err := app.uploadImage(ctx, file, profilePictureFolder, publicID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SetProfile(ctx, url, user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"profile_picture_url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type RegisterPushTokenPayload struct {
	Token string `json:"token" validate:"required,startswith=ExponentPushToken"`
}

// registerPushTokenHandler godoc
//
//	@Summary		Register a push token
//	@Description	Associates an Expo push token with the authenticated user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterPushTokenPayload	true	"Expo push token"
//	@Success		201		{string}	string	"token registered"
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/push-token [post]
func (app *application) registerPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload RegisterPushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.Save(r.Context(), user.ID, payload.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, "token registered"); err != nil {
		app.internalServerError(w, r, err)
	}
}

// logoutHandler godoc
//
//	@Summary		Log out
//	@Description	Invalidates the stored refresh token
//	@Tags			users
//	@Produce		json
//	@Success		200	{string}	string	"logged out"
//	@Security		ApiKeyAuth
//	@Router			/users/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.store.Users.DeleteRefreshToken(r.Context(), user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "logged out"); err != nil {
		app.internalServerError(w, r, err)
	}
}
