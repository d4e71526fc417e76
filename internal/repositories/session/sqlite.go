package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/examtaker/examadm/internal/dbx"
	"github.com/examtaker/examadm/internal/models"
)

// Keys in the session key/value table.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func getValue(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func setValue(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// Get returns the stored session. A missing access token means no session
// is stored and (nil, nil) is returned.
func (r *SQLiteRepository) Get(ctx context.Context) (*models.Session, error) {
	access, err := getValue(ctx, r.db, keyAccessToken)
	if err != nil {
		return nil, err
	}
	if access == "" {
		return nil, nil
	}
	refresh, err := getValue(ctx, r.db, keyRefreshToken)
	if err != nil {
		return nil, err
	}
	return &models.Session{AccessToken: access, RefreshToken: refresh}, nil
}

// Save stores both tokens in a single transaction so a crash cannot leave
// half a session behind.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := setValue(ctx, tx, keyAccessToken, s.AccessToken); err != nil {
			return err
		}
		return setValue(ctx, tx, keyRefreshToken, s.RefreshToken)
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
