package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextUserKey  = "user"
	contextTokenKey = "session_token"
)

// SessionStore maps opaque session tokens to usernames. Expired sessions are
// dropped on lookup and swept at most once per TTL when a session is created,
// so abandoned tokens live no longer than two TTLs.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]session
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

type session struct {
	username  string
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) Create(username string) string {
	token := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !now.Before(s.nextSweep) {
		s.sweepLocked(now)
		s.nextSweep = now.Add(s.ttl)
	}
	s.sessions[token] = session{username: username, expiresAt: now.Add(s.ttl)}
	return token
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for token, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Lookup returns the username for a live token. Expired tokens are removed.
func (s *SessionStore) Lookup(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !s.now().Before(sess.expiresAt) {
		s.Delete(token)
		return "", false
	}
	return sess.username, true
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// SessionMiddleware resolves the current user from the session cookie or a
// bearer token. Requests without a valid session continue anonymously.
func SessionMiddleware(store *SessionStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}
		if token != "" {
			if username, ok := store.Lookup(token); ok {
				c.Set(contextUserKey, username)
				c.Set(contextTokenKey, token)
			}
		}
		c.Next()
	}
}

func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (string, bool) {
	username := c.GetString(contextUserKey)
	return username, username != ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
