package backend

import (
	"context"
	"net/http"
	"sync"
)

type sessionKey struct{}

// Session carries the dashboard user's credentials to the backend and
// collects any cookies the backend rotates on token refresh.
type Session struct {
	Authorization string

	mu        sync.Mutex
	cookies   []*http.Cookie
	refreshed []*http.Cookie
}

// SessionFromRequest copies the credentials of an incoming dashboard request.
func SessionFromRequest(r *http.Request) *Session {
	return &Session{
		Authorization: r.Header.Get("Authorization"),
		cookies:       r.Cookies(),
	}
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session in ctx, or an empty one.
func SessionFromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}

// Refreshed returns the cookies set by the backend during this session.
// Handlers pass them on so the browser keeps the new tokens.
func (s *Session) Refreshed() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Cookie, len(s.refreshed))
	copy(out, s.refreshed)
	return out
}

func (s *Session) apply(req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Authorization != "" {
		req.Header.Set("Authorization", s.Authorization)
	}
	for _, c := range s.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
}

// update replaces cookies by name with those the backend just set.
func (s *Session) update(set []*http.Cookie) {
	if len(set) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range set {
		s.cookies = replaceCookie(s.cookies, c)
		s.refreshed = replaceCookie(s.refreshed, c)
	}
}

func replaceCookie(cookies []*http.Cookie, c *http.Cookie) []*http.Cookie {
	for i, existing := range cookies {
		if existing.Name == c.Name {
			cookies[i] = c
			return cookies
		}
	}
	return append(cookies, c)
}
