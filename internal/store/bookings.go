package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is one client's seat in a class.
type Booking struct {
	ID        int64         `json:"id"`
	Reference string        `json:"reference"`
	ClassID   int64         `json:"class_id"`
	UserID    int64         `json:"user_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// UserBooking is the view model for a client's booking list, ordered
// chronologically by class start time.
type UserBooking struct {
	BookingID    int64         `json:"booking_id"`
	Reference    string        `json:"reference"`
	ClassID      int64         `json:"class_id"`
	ClassTitle   string        `json:"class_title"`
	LocationName string        `json:"location_name"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Price        float64       `json:"price"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ClassBooking is the view model an instructor sees for their class roster.
type ClassBooking struct {
	BookingID    int64         `json:"booking_id"`
	Reference    string        `json:"reference"`
	UserID       int64         `json:"user_id"`
	UserName     string        `json:"user_name"`
	UserImageURL *string       `json:"user_image"`
	Status       BookingStatus `json:"status"`
	RequestedAt  time.Time     `json:"requested_at"`
}

type BookingStore struct {
	db   *pgxpool.Pool
	refs *BookingRefGenerator
}

// CreateBooking reserves a spot and inserts the booking in one transaction.
// The seat guard runs first so a full class never gets an extra booking.
func (s *BookingStore) CreateBooking(ctx context.Context, booking *Booking) error {
	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `
			UPDATE classes
			SET current_participants = current_participants + 1, updated_at = NOW()
			WHERE id = $1 AND status = 'active' AND current_participants < max_participants
		`, booking.ClassID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return ErrClassFull
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO bookings (class_id, user_id, status)
			VALUES ($1, $2, 'pending')
			RETURNING id, status, created_at, updated_at
		`, booking.ClassID, booking.UserID).Scan(
			&booking.ID, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrConflict
			}
			return err
		}

		booking.Reference, err = s.refs.Generate(booking.ID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE bookings SET reference = $1 WHERE id = $2`,
			booking.Reference, booking.ID,
		)
		return err
	})
}

// CancelBooking lets the booking's owner cancel it and frees the seat again.
// The cancelled booking is returned so callers can notify the instructor.
func (s *BookingStore) CancelBooking(ctx context.Context, bookingID, userID int64) (*Booking, error) {
	booking := &Booking{ID: bookingID, UserID: userID, Status: BookingCancelled}

	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE bookings
			SET status = 'cancelled', updated_at = NOW()
			WHERE id = $1 AND user_id = $2 AND status IN ('pending', 'confirmed')
			RETURNING class_id, reference, created_at, updated_at
		`, bookingID, userID).Scan(
			&booking.ClassID, &booking.Reference, &booking.CreatedAt, &booking.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE classes
			SET current_participants = GREATEST(current_participants - 1, 0), updated_at = NOW()
			WHERE id = $1
		`, booking.ClassID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateBookingStatus sets a new status on a booking of the given class and
// returns the updated record. Rejecting a pending booking frees the seat.
func (s *BookingStore) UpdateBookingStatus(ctx context.Context, classID, bookingID int64, status BookingStatus) (*Booking, error) {
	booking := &Booking{ClassID: classID}

	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var previous BookingStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM bookings WHERE id = $1 AND class_id = $2 FOR UPDATE`,
			bookingID, classID,
		).Scan(&previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: booking %d for class %d", ErrNotFound, bookingID, classID)
			}
			return err
		}

		err = tx.QueryRow(ctx, `
			UPDATE bookings
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND class_id = $3
			RETURNING id, reference, user_id, created_at, updated_at
		`, status, bookingID, classID).Scan(
			&booking.ID, &booking.Reference, &booking.UserID,
			&booking.CreatedAt, &booking.UpdatedAt,
		)
		if err != nil {
			return err
		}
		booking.Status = status

		if status == BookingRejected && previous != BookingRejected && previous != BookingCancelled {
			_, err = tx.Exec(ctx, `
				UPDATE classes
				SET current_participants = GREATEST(current_participants - 1, 0), updated_at = NOW()
				WHERE id = $1
			`, classID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingStore) GetBookingsByUserID(ctx context.Context, userID int64) ([]UserBooking, error) {
	const q = `
		SELECT
			b.id, b.reference, b.class_id, c.title, c.location_name,
			c.start_time, c.end_time, c.price, b.status, b.created_at
		FROM bookings b
		JOIN classes c ON c.id = b.class_id
		WHERE b.user_id = $1
		ORDER BY c.start_time, b.id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserBooking
	for rows.Next() {
		var ub UserBooking
		if err := rows.Scan(
			&ub.BookingID, &ub.Reference, &ub.ClassID, &ub.ClassTitle,
			&ub.LocationName, &ub.StartTime, &ub.EndTime, &ub.Price,
			&ub.Status, &ub.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, ub)
	}
	return out, rows.Err()
}

func (s *BookingStore) GetBookingsByClassID(ctx context.Context, classID int64) ([]ClassBooking, error) {
	const q = `
		SELECT
			b.id, b.reference, b.user_id,
			u.first_name || ' ' || u.last_name AS user_name,
			u.profile_picture_url, b.status, b.created_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.class_id = $1
		ORDER BY b.created_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, q, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClassBooking
	for rows.Next() {
		var cb ClassBooking
		if err := rows.Scan(
			&cb.BookingID, &cb.Reference, &cb.UserID, &cb.UserName,
			&cb.UserImageURL, &cb.Status, &cb.RequestedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, rows.Err()
}
