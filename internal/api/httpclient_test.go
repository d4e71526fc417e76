package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/examtaker/examadm/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c, srv
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("not-a-url", time.Second)
	require.Error(t, err)

	_, err = NewHTTPClient("://missing", time.Second)
	require.Error(t, err)
}

func TestProfile_AttachesBearerHeader(t *testing.T) {
	var gotAuth, gotReqID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode(Profile{Username: "staff1", Email: "s@x.org"})
	}))
	c.SetSession(&models.Session{AccessToken: "tok123"})

	p, err := c.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.NotEmpty(t, gotReqID)
	require.Equal(t, "staff1", p.Username)
}

func TestProfile_NoSession_NoAuthHeader(t *testing.T) {
	var gotAuth string
	seen := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = true
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(Profile{})
	}))

	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	require.True(t, seen)
	require.Empty(t, gotAuth)
}

func TestGatedCall_401_FiresHookAndReturnsErrUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	c.SetSession(&models.Session{AccessToken: "stale"})

	hookFired := false
	c.OnUnauthorized(func() { hookFired = true })

	p, err := c.Profile(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Nil(t, p)
	require.True(t, hookFired)
}

func TestGatedCall_OtherStatus_ReturnsStatusError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	}))

	_, err := c.Stats(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.Code)
}

func TestLogin_Success_ArmsAndReturnsSession(t *testing.T) {
	var gotAuth string
	var gotBody loginRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(loginResponse{
			Message: "Login Successful",
			Tokens:  &tokenPair{Access: "abc", Refresh: "ref"},
		})
	}))

	s, err := c.Login(context.Background(), "admin", []byte("pw"))
	require.NoError(t, err)
	require.Empty(t, gotAuth, "login must go out unauthenticated")
	require.Equal(t, loginRequest{Username: "admin", Password: "pw"}, gotBody)
	require.Equal(t, "abc", s.AccessToken)
	require.Equal(t, "ref", s.RefreshToken)

	// Subsequent gated calls carry the fresh token without SetSession.
	var nextAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(Stats{})
	}))
	defer srv.Close()
	c.baseURL = srv.URL

	_, err = c.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", nextAuth)
}

func TestLogin_MissingAccessToken_IsInvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no tokens", `{"message":"ok"}`},
		{"empty access", `{"tokens":{"access":"","refresh":"r"}}`},
		{"not json", `<html>`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))

			s, err := c.Login(context.Background(), "admin", []byte("pw"))
			require.ErrorIs(t, err, ErrInvalidResponse)
			require.Nil(t, s)
			require.Nil(t, c.session, "no session may be armed on a failed login")
		})
	}
}

func TestLogin_BadCredentials_Collapse(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad", code)
		}))

		_, err := c.Login(context.Background(), "admin", []byte("wrong"))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestLogin_401_DoesNotFireUnauthorizedHook(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusUnauthorized)
	}))

	hookFired := false
	c.OnUnauthorized(func() { hookFired = true })

	_, err := c.Login(context.Background(), "admin", []byte("wrong"))
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, hookFired, "the login call itself is not gated")
}

func TestTransportFailure_IsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "admin", []byte("pw"))
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = c.Profile(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogout_PostsRefreshTokenGated(t *testing.T) {
	var gotAuth string
	var gotBody logoutRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, basePath+"logout/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Successfully logged out"})
	}))
	c.SetSession(&models.Session{AccessToken: "tok", RefreshToken: "ref"})

	require.NoError(t, c.Logout(context.Background(), "ref"))
	require.Equal(t, "Bearer tok", gotAuth)
	require.Equal(t, "ref", gotBody.RefreshToken)
}

func TestStats_DecodesOptionalFields(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_exams":7,"average_score":82.5,"rank":3}`))
	}))
	c.SetSession(&models.Session{AccessToken: "tok"})

	s, err := c.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, s.TotalExams)
	require.NotNil(t, s.AverageScore)
	require.Equal(t, 82.5, *s.AverageScore)
	require.NotNil(t, s.Rank)
	require.Nil(t, s.TotalScore)
}

func TestCreateTeacher_PostsPayload(t *testing.T) {
	var got TeacherRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, basePath+"create-teacher/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	c.SetSession(&models.Session{AccessToken: "tok"})

	req := TeacherRequest{Username: "t1", Email: "t@x.org", Password: "pw", PasswordConfirm: "pw"}
	require.NoError(t, c.CreateTeacher(context.Background(), req))
	require.Equal(t, req, got)
}

func TestClearSession_StripsCredential(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(Profile{})
	}))
	c.SetSession(&models.Session{AccessToken: "tok"})
	c.ClearSession()

	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}
