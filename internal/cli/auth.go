package cli

import (
	"context"
	"errors"
	"os"

	"github.com/examtaker/examadm/internal/api"
	"github.com/examtaker/examadm/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and exchanges them for a session.
//
// Failure handling follows the old console's messages: rejected credentials
// and a malformed login response both collapse into one generic line, a
// transport failure into another. On success the state flips to signed-in
// and the dashboard is rendered. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	a.loggedIn = false

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		var se *api.StatusError
		switch {
		case errors.Is(err, api.ErrInvalidCredentials), errors.Is(err, api.ErrInvalidResponse):
			printlnFn("Invalid username or password")
		case errors.Is(err, api.ErrUnavailable), errors.As(err, &se):
			printlnFn("Server error")
		default:
			printlnFn("Login failed: " + err.Error())
		}
		a.log.Warn(ctx, "login failed", "username", userName, "error", err)
		return err
	}

	a.loggedIn = true
	a.log.Info(ctx, "logged in", "username", userName)
	return a.Dashboard(ctx)
}

// Logout drops the session locally and best-effort server-side, returning
// the console to the anonymous state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	printlnFn("Logged out")
	return nil
}

// sessionExpired is wired as the gateway's unauthorized hook. It only flips
// visible state; the failed command itself decides what happens next.
func (a *App) sessionExpired() {
	if a.loggedIn {
		printlnFn("Session expired, please log in again")
	}
	a.loggedIn = false
}
