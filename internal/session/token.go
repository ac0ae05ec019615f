package session

import (
	"time"

	"github.com/qszone/naviguard/internal/storage"
)

// TokenStore manages the single bearer credential: a cache Store pre-bound
// to a reserved key and a fixed validity window.
//
// The credential is an opaque string end to end in this layer; structural
// validation, if any, happens server-side. Only one credential exists per
// namespace at a time — setting overwrites.
type TokenStore struct {
	store *storage.Store
	key   string
	ttl   time.Duration
}

// NewTokenStore binds store to the reserved credential key with a fixed TTL.
func NewTokenStore(store *storage.Store, key string, ttl time.Duration) *TokenStore {
	return &TokenStore{
		store: store,
		key:   key,
		ttl:   ttl,
	}
}

// Token returns the current credential, if one is stored and still valid.
// An expired or corrupt record behaves as "no credential".
func (t *TokenStore) Token() (string, bool) {
	var tok string
	if !t.store.Get(t.key, &tok) || tok == "" {
		return "", false
	}
	return tok, true
}

// SetToken stores a new credential, arming the fixed validity window.
func (t *TokenStore) SetToken(token string) error {
	return t.store.Set(t.key, token, t.ttl)
}

// RemoveToken deletes the stored credential.
func (t *TokenStore) RemoveToken() error {
	return t.store.Remove(t.key)
}
