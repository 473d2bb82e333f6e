package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"fitspot/internal/mailer"
	"fitspot/internal/notifications"
	"fitspot/internal/store"

	"github.com/go-chi/chi/v5"
)

// createBookingHandler godoc
//
//	@Summary		Book a class
//	@Description	Requests a spot in a class. The booking starts out pending
//	@Description	until the instructor confirms or rejects it.
//	@Tags			bookings
//	@Produce		json
//	@Param			classID	path		int	true	"Class ID"
//	@Success		201		{object}	store.Booking
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/classes/{classID}/bookings [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

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

	booking := &store.Booking{
		ClassID: classID,
		UserID:  user.ID,
	}

	if err := app.store.Bookings.CreateBooking(r.Context(), booking); err != nil {
		switch {
		case errors.Is(err, store.ErrClassFull):
			app.conflictResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.notifyBooking(class.Instructor.ID, notifications.BookingRequested, booking.Reference, class.Title)

	confirmation := struct {
		Username     string
		ClassTitle   string
		Reference    string
		StartTime    string
		LocationName string
	}{
		Username:     user.FirstName,
		ClassTitle:   class.Title,
		Reference:    booking.Reference,
		StartTime:    class.StartTime.Format("Mon, 2 Jan 2006 15:04"),
		LocationName: class.Location.Name,
	}

	go func() {
		if _, err := app.mailer.Send(mailer.BookingConfirmationTemplate, user.FirstName, user.Email, confirmation); err != nil {
			app.logger.Errorw("error sending booking email", "reference", booking.Reference, "error", err)
		}
	}()

	if err := app.jsonResponse(w, http.StatusCreated, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// myBookingsHandler godoc
//
//	@Summary		List my bookings
//	@Tags			bookings
//	@Produce		json
//	@Success		200	{array}		store.UserBooking
//	@Security		ApiKeyAuth
//	@Router			/bookings [get]
func (app *application) myBookingsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	bookings, err := app.store.Bookings.GetBookingsByUserID(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, bookings); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelBookingHandler godoc
//
//	@Summary		Cancel a booking
//	@Description	Cancels one of the authenticated user's bookings, frees the
//	@Description	seat and notifies the instructor
//	@Tags			bookings
//	@Produce		json
//	@Param			bookingID	path		int	true	"Booking ID"
//	@Success		200			{string}	string	"booking cancelled"
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID} [delete]
func (app *application) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid booking id"))
		return
	}

	booking, err := app.store.Bookings.CancelBooking(r.Context(), bookingID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	class, err := app.store.Classes.GetByID(r.Context(), booking.ClassID)
	if err == nil {
		app.notifyBooking(class.Instructor.ID, notifications.BookingCancelled, booking.Reference, class.Title)
	}

	if err := app.jsonResponse(w, http.StatusOK, "booking cancelled"); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listClassBookingsHandler godoc
//
//	@Summary		List class bookings
//	@Description	Roster of booking requests for a class, instructor only
//	@Tags			bookings
//	@Produce		json
//	@Param			classID	path		int	true	"Class ID"
//	@Success		200		{array}		store.ClassBooking
//	@Failure		403		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/classes/{classID}/bookings [get]
func (app *application) listClassBookingsHandler(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(chi.URLParam(r, "classID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid class id"))
		return
	}

	bookings, err := app.store.Bookings.GetBookingsByClassID(r.Context(), classID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, bookings); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateBookingStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected"`
}

// updateBookingStatusHandler godoc
//
//	@Summary		Confirm or reject a booking
//	@Description	Instructor decision on a booking request. Rejection frees
//	@Description	the seat again.
//	@Tags			bookings
//	@Accept			json
//	@Produce		json
//	@Param			classID		path		int							true	"Class ID"
//	@Param			bookingID	path		int							true	"Booking ID"
//	@Param			payload		body		UpdateBookingStatusPayload	true	"New status"
//	@Success		200			{object}	store.Booking
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/classes/{classID}/bookings/{bookingID} [patch]
func (app *application) updateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(chi.URLParam(r, "classID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid class id"))
		return
	}

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid booking id"))
		return
	}

	var payload UpdateBookingStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.store.Bookings.UpdateBookingStatus(r.Context(), classID, bookingID, store.BookingStatus(payload.Status))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	event := notifications.BookingConfirmed
	if booking.Status == store.BookingRejected {
		event = notifications.BookingRejected
	}

	class, err := app.store.Classes.GetByID(r.Context(), classID)
	if err == nil {
		app.notifyBooking(booking.UserID, event, booking.Reference, class.Title)
	}

	if err := app.jsonResponse(w, http.StatusOK, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// notifyBooking fires a push notification without blocking the request.
func (app *application) notifyBooking(userID int64, event notifications.BookingEvent, reference, classTitle string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), store.QueryTimeoutDuration)
		defer cancel()

		tokensByUser, err := app.store.PushTokens.GetTokensByUserIDs(ctx, []int64{userID})
		if err != nil {
			app.logger.Warnw("failed to load push tokens", "user_id", userID, "error", err)
			return
		}

		tokens := tokensByUser[userID]
		if len(tokens) == 0 {
			return
		}

		if err := notifications.SendBookingNotification(ctx, app.push, tokens, event, reference, classTitle); err != nil {
			app.logger.Warnw("failed to send booking notification", "user_id", userID, "error", err)
		}
	}()
}
