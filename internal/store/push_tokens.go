package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PushTokenStore struct {
	db *pgxpool.Pool
}

// Save upserts a device token for the user. A token moving to a new account
// is reassigned rather than duplicated.
func (s *PushTokenStore) Save(ctx context.Context, userID int64, token string) error {
	query := `
		INSERT INTO push_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, updated_at = NOW()
	`
	_, err := s.db.Exec(ctx, query, userID, token)
	return err
}

func (s *PushTokenStore) GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	query := `SELECT user_id, token FROM push_tokens WHERE user_id = ANY($1)`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := make(map[int64][]string, len(userIDs))
	for rows.Next() {
		var userID int64
		var token string
		if err := rows.Scan(&userID, &token); err != nil {
			return nil, err
		}
		tokens[userID] = append(tokens[userID], token)
	}
	return tokens, rows.Err()
}

func (s *PushTokenStore) Delete(ctx context.Context, userID int64, token string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM push_tokens WHERE user_id = $1 AND token = $2`,
		userID, token,
	)
	return err
}
