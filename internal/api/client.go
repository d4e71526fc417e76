// Package api is the gateway to the exam platform's auth API. It owns the
// outbound HTTP traffic of the console: every gated call goes through a single
// path that attaches the bearer credential and intercepts 401 responses.
package api

import (
	"context"

	"github.com/examtaker/examadm/internal/models"
)

// Profile is the staff member's own account, as returned by the profile
// endpoint. Display-only; nothing is cached between fetches.
type Profile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

// Stats is the aggregate exam statistics for the authenticated account.
// Pointer fields distinguish "absent" from zero.
type Stats struct {
	TotalExams   int      `json:"total_exams"`
	AverageScore *float64 `json:"average_score"`
	TotalScore   *int     `json:"total_score"`
	Rank         *int     `json:"rank"`
}

// TeacherRequest is the payload for creating a teacher account. Only admins
// may call the corresponding endpoint; the server enforces that.
type TeacherRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Client defines the calls the console makes against the backend.
//
// Contract:
//   - Login: unauthenticated; on success the returned session is also armed
//     on the client so subsequent gated calls carry it.
//   - Logout: gated, best-effort; invalidates the refresh token server-side.
//   - Profile, Stats, CreateTeacher: gated.
//
// Gated calls return ErrUnauthorized on 401 (after firing the unauthorized
// hook), ErrUnavailable on transport failure, and *StatusError for other
// HTTP error statuses. All methods honor context cancellation.
type Client interface {
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (*Profile, error)
	Stats(ctx context.Context) (*Stats, error)
	CreateTeacher(ctx context.Context, req TeacherRequest) error

	// SetSession arms the client with an existing session (e.g. one restored
	// from the local store at startup).
	SetSession(s *models.Session)

	// ClearSession drops the armed session; subsequent calls go out anonymous.
	ClearSession()

	// OnUnauthorized registers the hook fired whenever a gated call is
	// rejected with 401. The console uses it to surface the login prompt.
	OnUnauthorized(fn func())
}
