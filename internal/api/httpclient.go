package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/examtaker/examadm/internal/models"
)

const basePath = "/api/auth/"

// HTTPClient implements Client over the backend's REST API.
type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	session        *models.Session
	onUnauthorized func()
}

// NewHTTPClient builds a client for the backend at baseURL. The timeout
// bounds every request end to end; there are no retries.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host required", baseURL)
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) SetSession(s *models.Session) {
	c.session = s
}

func (c *HTTPClient) ClearSession() {
	c.session = nil
}

func (c *HTTPClient) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do performs one request against the auth API. For gated calls the armed
// session's access token is attached as a bearer credential; a 401 answer
// fires the unauthorized hook and becomes ErrUnauthorized without the body
// ever reaching the caller. Other error statuses come back as *StatusError.
// A 2xx body is decoded into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, gated bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if gated && c.session.Valid() {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if gated && resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidResponse, err)
		}
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type loginResponse struct {
	Message string     `json:"message"`
	Tokens  *tokenPair `json:"tokens"`
}

// Login exchanges credentials for a session. A 400/401 answer and a 2xx
// answer without tokens.access both mean the attempt failed; they collapse
// into ErrInvalidCredentials and ErrInvalidResponse respectively, and the
// caller presents both the same way.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "login/", loginRequest{Username: username, Password: string(password)}, &resp, false)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Code == http.StatusBadRequest || se.Code == http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if resp.Tokens == nil || resp.Tokens.Access == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrInvalidResponse)
	}

	s := &models.Session{AccessToken: resp.Tokens.Access, RefreshToken: resp.Tokens.Refresh}
	c.session = s
	return s, nil
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout asks the server to blacklist the refresh token. Best-effort: the
// caller clears local state regardless of the outcome.
func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "logout/", logoutRequest{RefreshToken: refreshToken}, nil, true)
}

func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "profile/", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, http.MethodGet, "stats/", nil, &s, true); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) CreateTeacher(ctx context.Context, req TeacherRequest) error {
	return c.do(ctx, http.MethodPost, "create-teacher/", req, nil, true)
}
