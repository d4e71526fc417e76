// Package cli provides the interactive staff console for the exam platform.
//
// It wires configuration, the local session store, the API gateway, and an
// interactive REPL. Typical flow: restore a persisted session (or prompt for
// credentials), then navigate between the dashboard, profile, and statistics
// views.
//
// Key behaviors:
//   - Login / Logout against the platform's auth API
//   - Bearer token attached to every gated call; a 401 anywhere drops the
//     session and brings the login prompt back
//   - Profile and statistics views fetched on demand, never cached
//   - Teacher account creation for admin users
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
