package session

import "errors"

// Principal is the authenticated user's identity and role set for the
// current session. It is populated once per session from a fetch keyed by
// the current credential and cleared on logout.
type Principal struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar"`
	Email  string   `json:"email,omitempty"`
	Role   []string `json:"role"`
}

// Sentinel errors for session operations.
var (
	// ErrSessionReset reports that the session was reset (logout or forced
	// credential removal) while a principal fetch was in flight; the fetch
	// result was discarded.
	ErrSessionReset = errors.New("session reset during principal fetch")
)
