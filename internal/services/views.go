package services

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/examtaker/examadm/internal/api"
	"github.com/examtaker/examadm/internal/models"
)

// ViewService fetches the data behind the console's content views. It is
// stateless: nothing is cached between navigations.
type ViewService interface {
	Profile(ctx context.Context) (*api.Profile, error)
	Stats(ctx context.Context) (*api.Stats, error)
	CreateTeacher(ctx context.Context, req api.TeacherRequest) error
}

type viewService struct {
	client api.Client
}

func NewViewService(client api.Client) ViewService {
	return &viewService{client: client}
}

func (v *viewService) Profile(ctx context.Context) (*api.Profile, error) {
	return v.client.Profile(ctx)
}

func (v *viewService) Stats(ctx context.Context) (*api.Stats, error) {
	return v.client.Stats(ctx)
}

func (v *viewService) CreateTeacher(ctx context.Context, req api.TeacherRequest) error {
	return v.client.CreateTeacher(ctx, req)
}

// Identity is what the dashboard can say about the signed-in account without
// a network call, read from the access token's claims.
type Identity struct {
	UserID    string
	ExpiresAt time.Time
}

// SessionIdentity decodes the access token's claims for display. The
// signature is NOT verified: the token is trusted exactly as far as the
// server accepting it, and nothing here gates on the claims. Returns nil
// for an anonymous or undecodable session.
func SessionIdentity(s *models.Session) *Identity {
	if !s.Valid() {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return nil
	}

	id := &Identity{}
	switch v := claims["user_id"].(type) {
	case string:
		id.UserID = v
	case float64:
		id.UserID = strconv.FormatInt(int64(v), 10)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id
}
