// Package session owns the credential lifecycle and the session-scoped
// principal.
//
// TokenStore binds the TTL cache store to a single reserved key with a
// fixed validity window (21600 seconds in the reference configuration), so
// the bearer credential can never outlive its window. Session layers the
// in-memory principal on top, with an epoch counter that discards principal
// fetches resolving after a Reset and a singleflight group that collapses
// concurrent fetches into one network call.
package session
