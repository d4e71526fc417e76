package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	Stats(ctx context.Context) error
	AddTeacher(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the staff console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - dashboard      — welcome view
//	  - users|profile  — own staff profile ("users" was the old nav label)
//	  - stats          — exam statistics
//	  - addteacher     — create a teacher account (admins only)
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Gated commands issued while signed out just reopen the login prompt.
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("examadm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, users (profile), stats, addteacher, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard":
			if !a.isLoggedIn() {
				_ = a.Login(ctx)
				continue
			}
			_ = a.Dashboard(ctx)

		case "users", "profile":
			if !a.isLoggedIn() {
				_ = a.Login(ctx)
				continue
			}
			_ = a.Profile(ctx)

		case "stats":
			if !a.isLoggedIn() {
				_ = a.Login(ctx)
				continue
			}
			_ = a.Stats(ctx)

		case "addteacher":
			if !a.isLoggedIn() {
				_ = a.Login(ctx)
				continue
			}
			_ = a.AddTeacher(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
