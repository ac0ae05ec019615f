package routes

import "sync"

// Table is the session-scoped route table: a fixed basic set concatenated
// with the accessible subset computed from the current principal's roles.
//
// The accessible set grows once per session (after credential validation)
// and is discarded on Reset; route-permission decisions are never persisted
// across sessions.
type Table struct {
	basic      []Route
	candidates []Route

	mu     sync.RWMutex
	access []Route
}

// NewTable creates a table over the fixed basic set and the declarative
// candidate set.
func NewTable(basic, candidates []Route) *Table {
	return &Table{
		basic:      basic,
		candidates: candidates,
	}
}

// Generate computes, stores, and returns the accessible subset of the
// candidate set for a principal holding roles.
func (t *Table) Generate(roles []string) []Route {
	access := FilterAsyncRoutes(t.candidates, roles)
	t.mu.Lock()
	t.access = access
	t.mu.Unlock()
	return access
}

// Routes returns the full table: basic routes followed by the accessible set.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	all := make([]Route, 0, len(t.basic)+len(t.access))
	all = append(all, t.basic...)
	all = append(all, t.access...)
	return all
}

// Menus returns the routes shown in navigation chrome: named and not hidden.
func (t *Table) Menus() []Route {
	var menus []Route
	for _, r := range t.Routes() {
		if r.Name != "" && !r.IsHidden {
			menus = append(menus, r)
		}
	}
	return menus
}

// Reset discards the accessible set (logout).
func (t *Table) Reset() {
	t.mu.Lock()
	t.access = nil
	t.mu.Unlock()
}
