package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSessionStore_CreateSweepsAbandonedSessions(t *testing.T) {
	store := NewSessionStore(time.Hour)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		store.Create("abandoned")
	}
	assert.Len(t, store.sessions, 5)

	now = now.Add(30 * time.Minute)
	fresh := store.Create("ravi")
	assert.Len(t, store.sessions, 6, "nothing has expired yet")

	now = now.Add(45 * time.Minute)
	latest := store.Create("asha")

	assert.Len(t, store.sessions, 2)
	_, ok := store.Lookup(fresh)
	assert.True(t, ok)
	_, ok = store.Lookup(latest)
	assert.True(t, ok)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	token := store.Create("ravi")
	username, ok := store.Lookup(token)
	assert.True(t, ok)
	assert.Equal(t, "ravi", username)

	now = now.Add(time.Minute)
	_, ok = store.Lookup(token)
	assert.False(t, ok, "session should expire after ttl")

	token = store.Create("asha")
	store.Delete(token)
	_, ok = store.Lookup(token)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer "))
}

func TestSessionMiddleware_RequireLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewSessionStore(time.Hour)
	token := store.Create("ravi")

	engine := gin.New()
	engine.Use(SessionMiddleware(store, "session_id"))
	engine.GET("/private", RequireLogin(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.String(http.StatusOK, user)
	})

	testCases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		body   string
	}{
		{name: "anonymous", setup: func(r *http.Request) {}, status: http.StatusUnauthorized},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, status: http.StatusOK, body: "ravi"},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session_id", Value: token}) }, status: http.StatusOK, body: "ravi"},
		{name: "unknown token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/private", nil)
			tc.setup(req)

			engine.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
