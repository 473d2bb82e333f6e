package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrClassFull         = errors.New("class has no free spots left")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		CreateAndInvite(ctx context.Context, user *User, token string, invitationExp time.Duration) error
		Activate(ctx context.Context, token string) error
		Delete(ctx context.Context, userID int64) error
		GetByID(ctx context.Context, userID int64) (*User, error)
		GetByEmail(ctx context.Context, email string) (*User, error)
		UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) error
		SetProfile(ctx context.Context, url string, userID int64) error
		GetProfileUrl(ctx context.Context, userID int64) (string, error)
		SaveRefreshToken(ctx context.Context, userID int64, token string) error
		GetRefreshToken(ctx context.Context, userID int64) (string, error)
		DeleteRefreshToken(ctx context.Context, userID int64) error
	}
	Classes interface {
		Create(ctx context.Context, class *Class) error
		GetByID(ctx context.Context, classID int64) (*Class, error)
		List(ctx context.Context) ([]Class, error)
		SetImageURL(ctx context.Context, classID int64, url string) error
		IsInstructor(ctx context.Context, classID, userID int64) (bool, error)
		IsAnyInstructor(ctx context.Context, userID int64) (bool, error)
		MarkCompletedClasses(ctx context.Context) error
	}
	Bookings interface {
		CreateBooking(ctx context.Context, booking *Booking) error
		CancelBooking(ctx context.Context, bookingID, userID int64) (*Booking, error)
		UpdateBookingStatus(ctx context.Context, classID, bookingID int64, status BookingStatus) (*Booking, error)
		GetBookingsByUserID(ctx context.Context, userID int64) ([]UserBooking, error)
		GetBookingsByClassID(ctx context.Context, classID int64) ([]ClassBooking, error)
	}
	PushTokens interface {
		Save(ctx context.Context, userID int64, token string) error
		GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
		Delete(ctx context.Context, userID int64, token string) error
	}
}

func NewStorage(db *pgxpool.Pool, refs *BookingRefGenerator) Storage {
	return Storage{
		Users:      &UsersStore{db},
		Classes:    &ClassStore{db},
		Bookings:   &BookingStore{db: db, refs: refs},
		PushTokens: &PushTokenStore{db},
	}
}

// withTx runs fn inside a transaction, rolling back on error.
func withTx(ctx context.Context, db *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
