// Package services contains the application services sitting between the
// interactive console and the API gateway / local session store.
package services

import (
	"context"
	"fmt"

	"github.com/examtaker/examadm/internal/api"
	"github.com/examtaker/examadm/internal/logging"
	"github.com/examtaker/examadm/internal/models"
	"github.com/examtaker/examadm/internal/repositories/session"
)

// AuthService owns the session lifecycle.
//
// Contract:
//   - Restore: load a previously persisted session into the gateway at
//     startup; reports whether one existed.
//   - Login: exchange credentials for a session, persist it, arm the gateway.
//   - Logout: invalidate the refresh token server-side (best-effort), then
//     clear the persisted session and the gateway.
//   - Expire: drop local session state after the server rejected the access
//     token; no server call.
//
// All methods honor context cancellation.
type AuthService interface {
	Restore(ctx context.Context) (bool, error)
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context) error
	Session() *models.Session
}

type authService struct {
	client   api.Client
	sessions session.Repository
	log      logging.Logger
	current  *models.Session
}

func NewAuthService(client api.Client, sessions session.Repository, log logging.Logger) AuthService {
	return &authService{client: client, sessions: sessions, log: log}
}

// Session returns the active session, or nil when anonymous.
func (a *authService) Session() *models.Session {
	return a.current
}

func (a *authService) Restore(ctx context.Context) (bool, error) {
	s, err := a.sessions.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to restore session: %w", err)
	}
	if !s.Valid() {
		return false, nil
	}
	a.current = s
	a.client.SetSession(s)
	return true, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	s, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := a.sessions.Save(ctx, s); err != nil {
		// The login itself succeeded; a store failure only costs persistence
		// across restarts.
		a.log.Warn(ctx, "failed to persist session", "error", err)
	}
	a.current = s
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if a.current != nil && a.current.RefreshToken != "" {
		if err := a.client.Logout(ctx, a.current.RefreshToken); err != nil {
			a.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}
	return a.Expire(ctx)
}

func (a *authService) Expire(ctx context.Context) error {
	a.current = nil
	a.client.ClearSession()
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}
