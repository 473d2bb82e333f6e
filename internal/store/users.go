package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail = errors.New("a user with that email already exists")
	ErrDuplicatePhone = errors.New("a user with that phone number already exists")
)

type User struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Password          password  `json:"-"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	Bio               *string   `json:"bio,omitempty"`
	Rating            float64   `json:"rating"`
	ReviewCount       int       `json:"review_count"`
	Specialties       []string  `json:"specialties,omitempty"`
	RefreshToken      string    `json:"-"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// password keeps the plaintext out of JSON and the hash out of handlers.
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash
	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

type UsersStore struct {
	db *pgxpool.Pool
}

func (s *UsersStore) create(ctx context.Context, tx pgx.Tx, user *User) error {
	query := `
		INSERT INTO users (first_name, last_name, password, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(
		ctx, query,
		user.FirstName, user.LastName, user.Password.hash, user.Email, user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return ErrDuplicateEmail
			case "users_phone_key":
				return ErrDuplicatePhone
			}
		}
		return err
	}
	return nil
}

// CreateAndInvite stores the user together with their activation invitation
// in one transaction.
func (s *UsersStore) CreateAndInvite(ctx context.Context, user *User, token string, invitationExp time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.create(ctx, tx, user); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO user_invitations (token, user_id, expiry)
			VALUES ($1, $2, $3)
		`, token, user.ID, time.Now().Add(invitationExp))
		return err
	})
}

// Activate flips the user active and burns the invitation. The token arrives
// in plaintext and is hashed before lookup.
func (s *UsersStore) Activate(ctx context.Context, plainToken string) error {
	hash := sha256.Sum256([]byte(plainToken))
	token := hex.EncodeToString(hash[:])

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `
			SELECT user_id FROM user_invitations
			WHERE token = $1 AND expiry > NOW()
		`, token).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, userID,
		); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM user_invitations WHERE user_id = $1`, userID)
		return err
	})
}

func (s *UsersStore) Delete(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_invitations WHERE user_id = $1`, userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
		return err
	})
}

func (s *UsersStore) GetByID(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, password,
			profile_picture_url, bio, rating, review_count, specialties,
			is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.Password.hash, &user.ProfilePictureURL, &user.Bio,
		&user.Rating, &user.ReviewCount, &user.Specialties,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UsersStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, password,
			profile_picture_url, bio, rating, review_count, specialties,
			is_active, created_at, updated_at
		FROM users
		WHERE email = $1 AND is_active = TRUE
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user := &User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.Password.hash, &user.ProfilePictureURL, &user.Bio,
		&user.Rating, &user.ReviewCount, &user.Specialties,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update. Column names are whitelisted; anything
// else is rejected.
func (s *UsersStore) UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for field, value := range updates {
		if !isValidUserField(field) {
			return fmt.Errorf("invalid field name: %s", field)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argCounter))
		args = append(args, value)
		argCounter++
	}
	args = append(args, userID)

	query := fmt.Sprintf("UPDATE users SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(setClauses, ", "), argCounter)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func isValidUserField(field string) bool {
	validFields := map[string]bool{
		"first_name":  true,
		"last_name":   true,
		"phone":       true,
		"bio":         true,
		"specialties": true,
	}
	return validFields[field]
}

func (s *UsersStore) SetProfile(ctx context.Context, url string, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`UPDATE users SET profile_picture_url = $1, updated_at = NOW() WHERE id = $2`,
		url, userID,
	)
	return err
}

func (s *UsersStore) GetProfileUrl(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var url *string
	err := s.db.QueryRow(ctx,
		`SELECT profile_picture_url FROM users WHERE id = $1`, userID,
	).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if url == nil {
		return "", nil
	}
	return *url, nil
}

func (s *UsersStore) SaveRefreshToken(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`UPDATE users SET refresh_token = $1, updated_at = NOW() WHERE id = $2`,
		token, userID,
	)
	return err
}

func (s *UsersStore) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	return err
}

// GetRefreshToken returns the refresh token currently on file for the user,
// or the empty string after a logout.
func (s *UsersStore) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var token *string
	err := s.db.QueryRow(ctx,
		`SELECT refresh_token FROM users WHERE id = $1`, userID,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return *token, nil
}
