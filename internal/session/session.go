package session

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Session is the explicit session context: the stored credential plus the
// in-memory principal. It is the only process-wide mutable authentication
// state; Reset returns it to the logged-out baseline.
//
// All methods are safe for concurrent use.
type Session struct {
	tokens *TokenStore

	mu        sync.RWMutex
	principal *Principal
	epoch     uint64

	group singleflight.Group
}

// New creates a logged-out session over the given token store.
func New(tokens *TokenStore) *Session {
	return &Session{tokens: tokens}
}

// Token returns the current credential, if any.
func (s *Session) Token() (string, bool) {
	return s.tokens.Token()
}

// SetToken stores a new credential (login).
func (s *Session) SetToken(token string) error {
	return s.tokens.SetToken(token)
}

// Principal returns the session principal, if one has been loaded.
func (s *Session) Principal() (*Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal, s.principal != nil
}

// Roles returns the principal's role tags, or nil when no principal is loaded.
func (s *Session) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return nil
	}
	return s.principal.Role
}

// LoadPrincipal returns the session principal, fetching it with fetch if it
// has not been loaded yet. Concurrent callers share a single in-flight fetch.
//
// A fetch result that lands after Reset has run is discarded and reported as
// ErrSessionReset, so a stale fetch from an abandoned navigation can never
// repopulate a session that has since logged out.
func (s *Session) LoadPrincipal(ctx context.Context, fetch func(context.Context) (*Principal, error)) (*Principal, error) {
	if p, ok := s.Principal(); ok {
		return p, nil
	}

	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	v, err, _ := s.group.Do("principal", func() (any, error) {
		p, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if !s.storePrincipal(p, epoch) {
			return nil, ErrSessionReset
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Principal), nil
}

// storePrincipal installs p unless the session epoch moved since the fetch
// began. Reports whether the principal was installed.
func (s *Session) storePrincipal(p *Principal, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return false
	}
	s.principal = p
	return true
}

// SetPrincipal installs a principal directly. Used by tests and by flows
// that already hold a fresh server response.
func (s *Session) SetPrincipal(p *Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = p
}

// Reset clears the credential and the principal and invalidates any
// in-flight principal fetch (logout).
func (s *Session) Reset() error {
	s.mu.Lock()
	s.principal = nil
	s.epoch++
	s.mu.Unlock()
	return s.tokens.RemoveToken()
}

// RemoveToken removes only the stored credential, leaving the in-memory
// principal intact. The permission guard uses this when a principal fetch
// fails and the credential is presumed stale.
func (s *Session) RemoveToken() error {
	return s.tokens.RemoveToken()
}
