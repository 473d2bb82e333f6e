package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitspot/internal/geo"
)

type ClassType string

const (
	ClassGroup    ClassType = "group"
	ClassPersonal ClassType = "personal"
)

type ClassLevel string

const (
	LevelBeginner     ClassLevel = "beginner"
	LevelIntermediate ClassLevel = "intermediate"
	LevelAdvanced     ClassLevel = "advanced"
	LevelAll          ClassLevel = "all"
)

type ClassStatus string

const (
	ClassActive    ClassStatus = "active"
	ClassCancelled ClassStatus = "cancelled"
	ClassCompleted ClassStatus = "completed"
)

// ClassLocation is the address snapshot embedded on a class. It is not the
// same shape as a resolved search location; it only describes where the
// session happens.
type ClassLocation struct {
	Name        string           `json:"name"`
	City        string           `json:"city"`
	Address     string           `json:"address"`
	Coordinates *geo.Coordinates `json:"coordinates,omitempty"`
}

// InstructorProfile is a read-only snapshot of the instructor shown on class
// cards. It is denormalized at read time from the users table.
type InstructorProfile struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Specialties []string `json:"specialties,omitempty"`
}

// Class is a bookable fitness session.
type Class struct {
	ID                  int64             `json:"id"`
	Title               string            `json:"title"`
	Description         string            `json:"description"`
	Tags                []string          `json:"tags,omitempty"`
	ImageURL            string            `json:"image_url,omitempty"`
	StartTime           time.Time         `json:"start_time"`
	EndTime             time.Time         `json:"end_time"`
	MaxParticipants     int               `json:"max_participants"`
	CurrentParticipants int               `json:"current_participants"`
	Type                ClassType         `json:"type"`
	Level               ClassLevel        `json:"level"`
	Location            ClassLocation     `json:"location"`
	Price               float64           `json:"price"`
	Instructor          InstructorProfile `json:"instructor"`
	Status              ClassStatus       `json:"status"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type ClassStore struct {
	db *pgxpool.Pool
}

const classColumns = `
	c.id, c.title, c.description, c.tags, c.image_url,
	c.start_time, c.end_time, c.max_participants, c.current_participants,
	c.class_type, c.level,
	c.location_name, c.city, c.address, c.latitude, c.longitude,
	c.price, c.status, c.created_at, c.updated_at,
	u.id, u.first_name || ' ' || u.last_name, u.rating, u.review_count, u.specialties`

func (s *ClassStore) Create(ctx context.Context, class *Class) error {
	query := `
		INSERT INTO classes
			(instructor_id, title, description, tags, image_url,
			 start_time, end_time, max_participants, class_type, level,
			 location_name, city, address, latitude, longitude, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, status, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var lat, lon *float64
	if class.Location.Coordinates != nil {
		lat = &class.Location.Coordinates.Latitude
		lon = &class.Location.Coordinates.Longitude
	}

	return s.db.QueryRow(
		ctx, query,
		class.Instructor.ID,
		class.Title,
		class.Description,
		class.Tags,
		class.ImageURL,
		class.StartTime,
		class.EndTime,
		class.MaxParticipants,
		class.Type,
		class.Level,
		class.Location.Name,
		class.Location.City,
		class.Location.Address,
		lat,
		lon,
		class.Price,
	).Scan(&class.ID, &class.Status, &class.CreatedAt, &class.UpdatedAt)
}

func (s *ClassStore) GetByID(ctx context.Context, classID int64) (*Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes c
		JOIN users u ON u.id = c.instructor_id
		WHERE c.id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	row := s.db.QueryRow(ctx, query, classID)
	class, err := scanClass(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return class, nil
}

// List returns the working set the filter pipeline runs over: active classes
// that have not yet ended, in chronological order.
func (s *ClassStore) List(ctx context.Context) ([]Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes c
		JOIN users u ON u.id = c.instructor_id
		WHERE c.status = 'active' AND c.end_time > NOW()
		ORDER BY c.start_time, c.id
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *class)
	}
	return classes, rows.Err()
}

func (s *ClassStore) SetImageURL(ctx context.Context, classID int64, url string) error {
	query := `UPDATE classes SET image_url = $1, updated_at = NOW() WHERE id = $2`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, query, url, classID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsInstructor reports whether the user teaches the given class.
func (s *ClassStore) IsInstructor(ctx context.Context, classID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var instructorID int64
	err := s.db.QueryRow(ctx, `SELECT instructor_id FROM classes WHERE id = $1`, classID).Scan(&instructorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	return instructorID == userID, nil
}

// IsAnyInstructor reports whether the user teaches at least one class. Token
// roles are derived from this instead of trusting the login payload.
func (s *ClassStore) IsAnyInstructor(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classes WHERE instructor_id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

// MarkCompletedClasses flips active classes whose end time has passed to
// completed. Run periodically by the background job.
func (s *ClassStore) MarkCompletedClasses(ctx context.Context) error {
	query := `
		UPDATE classes
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'active' AND end_time < NOW()
	`
	_, err := s.db.Exec(ctx, query)
	return err
}

func scanClass(row pgx.Row) (*Class, error) {
	var c Class
	var lat, lon *float64

	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Tags, &c.ImageURL,
		&c.StartTime, &c.EndTime, &c.MaxParticipants, &c.CurrentParticipants,
		&c.Type, &c.Level,
		&c.Location.Name, &c.Location.City, &c.Location.Address, &lat, &lon,
		&c.Price, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&c.Instructor.ID, &c.Instructor.Name, &c.Instructor.Rating,
		&c.Instructor.ReviewCount, &c.Instructor.Specialties,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		c.Location.Coordinates = &geo.Coordinates{Latitude: *lat, Longitude: *lon}
	}
	return &c, nil
}
