// Package session persists the console's authenticated session so it
// survives restarts. Absence of a stored session is the anonymous state,
// not an error.
package session

import (
	"context"

	"github.com/examtaker/examadm/internal/models"
)

type Repository interface {
	// Get returns the stored session, or nil when none is stored.
	Get(ctx context.Context) (*models.Session, error)

	// Save stores the session, replacing any previous one.
	Save(ctx context.Context, s *models.Session) error

	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
