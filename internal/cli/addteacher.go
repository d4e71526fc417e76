package cli

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/examtaker/examadm/internal/api"
	"github.com/examtaker/examadm/internal/common"
)

// AddTeacher interactively creates a teacher account. The server only allows
// this for admin users; a 403 is reported as such rather than as a raw status.
func (a *App) AddTeacher(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Teacher username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Teacher email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := api.TeacherRequest{
		Username:        username,
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		Password:        string(password),
		PasswordConfirm: string(password),
	}

	if err := a.viewService.CreateTeacher(ctx, req); err != nil {
		var se *api.StatusError
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			if e := a.authService.Expire(ctx); e != nil {
				a.log.Warn(ctx, "failed to drop expired session", "error", e)
			}
			return a.Login(ctx)
		case errors.As(err, &se) && se.Code == http.StatusForbidden:
			printlnFn("Only admins can create teacher accounts")
		case errors.Is(err, api.ErrUnavailable):
			printlnFn("Server error")
		default:
			printlnFn("Failed to create teacher: " + err.Error())
		}
		a.log.Warn(ctx, "create teacher failed", "username", username, "error", err)
		return err
	}

	printlnFn("Teacher account created")
	return nil
}
