package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{
		"status":  status,
		"success": status < 300,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

// refreshServer accepts only "Bearer fresh" on /student/profile and counts refresh calls.
type refreshServer struct {
	refreshCalls atomic.Int32
	refreshOK    bool
}

func (s *refreshServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/student/refresh":
		s.refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !s.refreshOK || req.RefreshToken != "refresh-1" {
			writeEnvelope(w, http.StatusUnauthorized, "Invalid or missing token", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Token refreshed", map[string]interface{}{
			"token":        "fresh",
			"refreshToken": "refresh-2",
			"email":        "asha@example.com",
		})
	case "/student/profile":
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeEnvelope(w, http.StatusUnauthorized, "Invalid or missing token", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Profile retrieved", map[string]interface{}{"email": "asha@example.com"})
	default:
		writeEnvelope(w, http.StatusNotFound, "URL not found", nil)
	}
}

func TestConcurrentUnauthorizedRefreshOnce(t *testing.T) {
	srv := &refreshServer{refreshOK: true}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(Tokens{AccessToken: "stale", RefreshToken: "refresh-1"}))
	c := New(ts.URL, WithStorage(storage))

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := c.Profile(context.Background())
			if err == nil && p.Email != "asha@example.com" {
				err = assert.AnError
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, srv.refreshCalls.Load())

	tokens, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "fresh", RefreshToken: "refresh-2"}, tokens)
}

func TestRefreshFailureClearsStorage(t *testing.T) {
	srv := &refreshServer{refreshOK: false}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(Tokens{AccessToken: "stale", RefreshToken: "refresh-1"}))

	var expired atomic.Int32
	c := New(ts.URL, WithStorage(storage), WithSessionExpiredHandler(func() { expired.Add(1) }))

	_, err := c.Profile(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 1, expired.Load())

	tokens, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tokens.AccessToken)
	assert.Empty(t, tokens.RefreshToken)
}

func TestNoRefreshTokenExpiresWithoutCall(t *testing.T) {
	srv := &refreshServer{refreshOK: true}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.Profile(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.EqualValues(t, 0, srv.refreshCalls.Load())
}

func TestLoginStoresTokensAndErrorsDecode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/student/login":
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req["password"] != "s3cret-pass" {
				writeEnvelope(w, http.StatusUnauthorized, "Invalid credentials", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, "Login successful", map[string]interface{}{
				"token":        "access-1",
				"refreshToken": "refresh-1",
				"expiresIn":    3600,
				"email":        "asha@example.com",
				"role":         "student",
			})
		case "/course/":
			assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":200,"success":true,"message":"All courses",
				"data":[{"_id":"64b7f0c2a1b2c3d4e5f60718","title":"Physics"}],
				"meta":{"page":2,"limit":1,"total":3,"totalPages":3,"hasNext":true,"hasPrevious":true}}`))
		default:
			writeEnvelope(w, http.StatusForbidden, "You are not allowed to access this resource", nil)
		}
	}))
	defer ts.Close()

	c := New(ts.URL)

	_, err := c.Login(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "api error 401: Invalid credentials", err.Error())

	resp, err := c.Login(context.Background(), "asha@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "access-1", resp.Token)
	require.NotNil(t, resp.Student)
	assert.Equal(t, "asha@example.com", resp.Email)

	courses, meta, err := c.ListCourses(context.Background(), ListOptions{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Physics", courses[0].Title)
	require.NotNil(t, meta)
	assert.EqualValues(t, 3, meta.Total)

	err = c.DeleteCourse(context.Background(), "64b7f0c2a1b2c3d4e5f60718")
	assert.True(t, IsStatus(err, http.StatusForbidden))
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "tokens.json")
	s := NewFileStorage(path)

	tokens, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Tokens{}, tokens)

	require.NoError(t, s.Save(Tokens{AccessToken: "a", RefreshToken: "r"}))
	tokens, err = NewFileStorage(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "a", RefreshToken: "r"}, tokens)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	tokens, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, Tokens{}, tokens)
}

func TestListOptionsEncode(t *testing.T) {
	assert.Equal(t, "", ListOptions{}.encode(nil))
	assert.Equal(t, "?limit=5&order=asc&page=1&search=phy", ListOptions{Search: "phy", Page: 1, Limit: 5, Order: "asc"}.encode(nil))
}
