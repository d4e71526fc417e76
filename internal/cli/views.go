package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/examtaker/examadm/internal/api"
	"github.com/examtaker/examadm/internal/services"
)

// View identifies the active content view. Navigation switches the value and
// re-renders; what is on screen is always derived from it.
type View int

const (
	ViewDashboard View = iota
	ViewProfile
	ViewStats
)

func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewProfile:
		return "profile"
	case ViewStats:
		return "stats"
	}
	return "unknown"
}

// orNA substitutes the placeholder shown for absent values.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func floatOrNA(f *float64) string {
	if f == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func intOrNA(i *int) string {
	if i == nil {
		return "N/A"
	}
	return strconv.Itoa(*i)
}

// beginView cancels any in-flight view load and opens a context for the new
// one. A load whose context was cancelled must not render: its response is
// stale the moment the user navigates away.
func (a *App) beginView(ctx context.Context) context.Context {
	if a.viewCancel != nil {
		a.viewCancel()
	}
	vctx, cancel := context.WithCancel(ctx)
	a.viewCancel = cancel
	return vctx
}

// render draws the given view from its data. Keyed strictly on the View
// value; callers decide what data accompanies which view.
func (a *App) render(v View, data any) {
	a.view = v

	switch v {
	case ViewDashboard:
		fmt.Fprintln(a.out, "=== Dashboard ===")
		fmt.Fprintln(a.out, "Welcome to the exam platform staff console.")
		if id, ok := data.(*services.Identity); ok && id != nil {
			if id.UserID != "" {
				fmt.Fprintf(a.out, "Signed in as user #%s\n", id.UserID)
			}
			if !id.ExpiresAt.IsZero() {
				fmt.Fprintf(a.out, "Session valid until %s\n", id.ExpiresAt.Format("2006-01-02 15:04:05"))
			}
		}

	case ViewProfile:
		p := data.(*api.Profile)
		fmt.Fprintln(a.out, "=== Profile ===")
		fmt.Fprintf(a.out, "Username: %s\n", p.Username)
		fmt.Fprintf(a.out, "Email:    %s\n", p.Email)
		fmt.Fprintf(a.out, "Role:     %s\n", orNA(p.Role))
		if p.FullName != "" {
			fmt.Fprintf(a.out, "Name:     %s\n", p.FullName)
		}

	case ViewStats:
		s := data.(*api.Stats)
		fmt.Fprintln(a.out, "=== Statistics ===")
		fmt.Fprintf(a.out, "Total exams:   %d\n", s.TotalExams)
		fmt.Fprintf(a.out, "Average score: %s\n", floatOrNA(s.AverageScore))
		if s.TotalScore != nil {
			fmt.Fprintf(a.out, "Total score:   %s\n", intOrNA(s.TotalScore))
		}
		if s.Rank != nil {
			fmt.Fprintf(a.out, "Rank:          %s\n", intOrNA(s.Rank))
		}
	}
}

// Dashboard shows the static welcome view. No network call.
func (a *App) Dashboard(ctx context.Context) error {
	a.beginView(ctx)
	a.render(ViewDashboard, services.SessionIdentity(a.authService.Session()))
	return nil
}

// Profile loads and shows the signed-in staff member's own profile.
// The navigation bar of the old web console labeled this entry "Users",
// so the REPL accepts "users" as an alias.
func (a *App) Profile(ctx context.Context) error {
	vctx := a.beginView(ctx)

	p, err := a.viewService.Profile(vctx)
	if err != nil {
		return a.viewLoadFailed(ctx, vctx, err)
	}
	if vctx.Err() != nil {
		return nil
	}
	a.render(ViewProfile, p)
	return nil
}

// Stats loads and shows the account's exam statistics.
func (a *App) Stats(ctx context.Context) error {
	vctx := a.beginView(ctx)

	s, err := a.viewService.Stats(vctx)
	if err != nil {
		return a.viewLoadFailed(ctx, vctx, err)
	}
	if vctx.Err() != nil {
		return nil
	}
	a.render(ViewStats, s)
	return nil
}

// viewLoadFailed maps a failed view load onto user-visible behavior: a 401
// drops the session and reopens the login prompt, anything else becomes an
// error line. Nothing is rendered from the failed call.
func (a *App) viewLoadFailed(ctx context.Context, vctx context.Context, err error) error {
	if vctx.Err() != nil {
		// Superseded by a newer navigation; its outcome is irrelevant.
		return nil
	}

	switch {
	case errors.Is(err, api.ErrUnauthorized):
		if e := a.authService.Expire(ctx); e != nil {
			a.log.Warn(ctx, "failed to drop expired session", "error", e)
		}
		return a.Login(ctx)
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server error")
	default:
		printlnFn(fmt.Sprintf("Failed to load view: %s", err))
	}
	a.log.Warn(ctx, "view load failed", "error", err)
	return err
}
