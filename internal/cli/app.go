package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/examtaker/examadm/internal/api"
	"github.com/examtaker/examadm/internal/config"
	"github.com/examtaker/examadm/internal/logging"
	"github.com/examtaker/examadm/internal/repositories/session"
	"github.com/examtaker/examadm/internal/services"

	_ "modernc.org/sqlite"
)

// App holds the console's state: the services it talks through, whether a
// user is signed in, and which view is active.
type App struct {
	config      *config.Config
	authService services.AuthService
	viewService services.ViewService
	log         logging.Logger

	db         *sql.DB
	reader     *bufio.Reader
	out        io.Writer
	loggedIn   bool
	view       View
	viewCancel context.CancelFunc
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		log.Error(ctx, "failed to open session store", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessions := session.NewSQLiteRepository(db)
	as := services.NewAuthService(apiClient, sessions, log)
	vs := services.NewViewService(apiClient)

	app := &App{
		config:      c,
		authService: as,
		viewService: vs,
		log:         log,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	apiClient.OnUnauthorized(app.sessionExpired)

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.viewCancel != nil {
		a.viewCancel()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
