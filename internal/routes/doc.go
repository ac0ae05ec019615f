// Package routes declares the route tables and the permission route
// resolver.
//
// The root-level table is the concatenation of a fixed basic set (login,
// dashboard, catch-all) and an accessible subset of the declarative
// candidate set, computed per session by FilterAsyncRoutes from the
// principal's role tags. Role matching is a single-level set intersection,
// not a rule language.
package routes
