package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/examtaker/examadm/internal/services"
)

func (a *App) getStatus() string {
	if !a.loggedIn {
		return "(signed out)"
	}
	if id := services.SessionIdentity(a.authService.Session()); id != nil && id.UserID != "" {
		return "(user #" + id.UserID + ")"
	}
	return "(signed in)"
}

// startup decides the initial state: a persisted session lands straight on
// the dashboard, otherwise the login prompt comes first.
func (a *App) startup(ctx context.Context) {
	restored, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	if restored {
		a.loggedIn = true
		_ = a.Dashboard(ctx)
	} else {
		_ = a.Login(ctx)
	}
}

// Root runs the console: restore a persisted session and land on the
// dashboard, or prompt for credentials first, then hand over to the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Exam platform staff console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.startup(ctx)

	runREPL(ctx, a, a.getStatus, scanner)
}
