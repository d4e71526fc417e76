// Package models holds the client-side data model of the staff console.
package models

// Session is the authenticated state of the console. It is created by a
// successful login, persisted so it survives restarts, and destroyed by
// logout or by the server rejecting the access token.
//
// The refresh token is retained only so logout can invalidate it server-side;
// the console never refreshes an expired access token.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Valid reports whether the session carries a usable access token.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}
