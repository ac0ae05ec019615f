package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qszone/naviguard/internal/infrastructure/logging"
	"github.com/qszone/naviguard/internal/routes"
)

// maxRedirects bounds guard-driven redirect chains to keep a mis-configured
// guard from looping forever.
const maxRedirects = 8

// ErrTooManyRedirects reports a guard redirect chain exceeding maxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects in one navigation")

// Navigation is one navigation attempt: ephemeral, created per attempt and
// not retained past guard resolution.
type Navigation struct {
	// To is the target path of this attempt.
	To string

	// From is the path the navigation started from.
	From string

	// Route is the registered descriptor matched by To, or nil when no
	// route (not even a catch-all) matches.
	Route *routes.Route
}

// Guard is a before-navigation handler. It observes the attempt and returns
// a verdict: allow, redirect, re-dispatch, or fail.
type Guard func(ctx context.Context, nav *Navigation) Verdict

// AfterHook observes a completed navigation.
type AfterHook func(nav *Navigation)

// ErrorHook observes a failed navigation.
type ErrorHook func(nav *Navigation, err error)

// verdictKind enumerates guard outcomes.
type verdictKind int

const (
	verdictAllow verdictKind = iota
	verdictRedirect
	verdictRedispatch
	verdictFail
)

// Verdict is a guard's decision for one navigation attempt.
type Verdict struct {
	kind verdictKind
	path string
	err  error
}

// Allow lets the navigation continue unchanged.
func Allow() Verdict { return Verdict{kind: verdictAllow} }

// Redirect abandons the attempt and navigates to path instead (with replace
// semantics: the abandoned attempt leaves no history).
func Redirect(path string) Verdict { return Verdict{kind: verdictRedirect, path: path} }

// Redispatch re-runs the full guard chain against path. Used after route
// registration so that newly added routes are resolvable on the next pass.
func Redispatch(path string) Verdict { return Verdict{kind: verdictRedispatch, path: path} }

// Fail terminates the navigation with err.
func Fail(err error) Verdict { return Verdict{kind: verdictFail, err: err} }

// Router is an in-process navigation engine over a registered route table.
//
// Guards run sequentially and each navigation runs to completion before the
// next begins, so guards never observe interleaved mutations of the table.
type Router struct {
	logger *logging.Logger

	navMu   sync.Mutex // serialises navigations
	current string

	tableMu sync.RWMutex
	byName  map[string]routes.Route
	ordered []routes.Route

	hookMu sync.RWMutex
	guards []Guard
	afters []AfterHook
	errs   []ErrorHook
}

// New creates a router with the given initial route table.
func New(initial []routes.Route, logger *logging.Logger) *Router {
	r := &Router{
		logger: logger.With("component", "router"),
		byName: make(map[string]routes.Route),
	}
	for _, rt := range initial {
		r.AddRoute(rt)
	}
	return r
}

// AddRoute registers a route and, recursively, its children. Registering a
// name twice overwrites the earlier descriptor. Routes are never
// deregistered within a session.
func (r *Router) AddRoute(rt routes.Route) {
	r.tableMu.Lock()
	defer r.tableMu.Unlock()
	r.addLocked(rt)
}

func (r *Router) addLocked(rt routes.Route) {
	if _, exists := r.byName[rt.Name]; !exists {
		r.ordered = append(r.ordered, rt)
	}
	r.byName[rt.Name] = rt
	for _, child := range rt.Children {
		r.addLocked(child)
	}
}

// HasRoute reports whether a route with the given unique name is registered.
func (r *Router) HasRoute(name string) bool {
	r.tableMu.RLock()
	defer r.tableMu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Match resolves a path against the registered table: exact path match
// first, then the catch-all if one is registered.
func (r *Router) Match(path string) (routes.Route, bool) {
	r.tableMu.RLock()
	defer r.tableMu.RUnlock()

	var catchAll *routes.Route
	for i := range r.ordered {
		rt := r.byName[r.ordered[i].Name]
		if rt.Path == path {
			return rt, true
		}
		if rt.Path == routes.CatchAllPath && catchAll == nil {
			matched := rt
			catchAll = &matched
		}
	}
	if catchAll != nil {
		return *catchAll, true
	}
	return routes.Route{}, false
}

// BeforeEach registers a guard. Guards run in registration order.
func (r *Router) BeforeEach(g Guard) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.guards = append(r.guards, g)
}

// AfterEach registers a hook invoked after a navigation completes.
func (r *Router) AfterEach(h AfterHook) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.afters = append(r.afters, h)
}

// OnError registers a hook invoked when a navigation fails.
func (r *Router) OnError(h ErrorHook) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.errs = append(r.errs, h)
}

// Current returns the path of the last completed navigation.
func (r *Router) Current() string {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	return r.current
}

// Push navigates to path. The call blocks until every guard for this
// navigation (and any guard-driven redirect) has resolved.
func (r *Router) Push(ctx context.Context, path string) error {
	return r.navigate(ctx, path)
}

// Replace navigates to path without keeping the abandoned target. The
// in-process engine keeps no history, so Replace and Push share semantics;
// both exist to mirror the collaborator interface guards are written for.
func (r *Router) Replace(ctx context.Context, path string) error {
	return r.navigate(ctx, path)
}

func (r *Router) navigate(ctx context.Context, to string) error {
	r.navMu.Lock()
	defer r.navMu.Unlock()
	return r.dispatch(ctx, to, r.current, 0)
}

// dispatch runs the guard chain for one attempt, recursing on redirect and
// re-dispatch verdicts.
func (r *Router) dispatch(ctx context.Context, to, from string, depth int) error {
	nav := &Navigation{To: to, From: from}
	if matched, ok := r.Match(to); ok {
		nav.Route = &matched
	}

	if depth > maxRedirects {
		err := fmt.Errorf("%w: last target %s", ErrTooManyRedirects, to)
		r.fireError(nav, err)
		return err
	}

	r.hookMu.RLock()
	guards := r.guards
	r.hookMu.RUnlock()

	for _, g := range guards {
		v := g(ctx, nav)
		switch v.kind {
		case verdictAllow:
			continue
		case verdictRedirect:
			r.logger.Debug("navigation redirected", "from", to, "to", v.path)
			return r.dispatch(ctx, v.path, from, depth+1)
		case verdictRedispatch:
			r.logger.Debug("navigation re-dispatched", "path", v.path)
			return r.dispatch(ctx, v.path, from, depth+1)
		case verdictFail:
			r.fireError(nav, v.err)
			return v.err
		}
	}

	r.current = to

	r.hookMu.RLock()
	afters := r.afters
	r.hookMu.RUnlock()
	for _, h := range afters {
		h(nav)
	}
	return nil
}

func (r *Router) fireError(nav *Navigation, err error) {
	r.logger.Error("navigation failed", "to", nav.To, "error", err)
	r.hookMu.RLock()
	hooks := r.errs
	r.hookMu.RUnlock()
	for _, h := range hooks {
		h(nav, err)
	}
}
