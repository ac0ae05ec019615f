// Package guard implements the navigation guards.
//
// The permission guard is the state machine gating every route entry:
// credential presence check, cached-principal short-circuit, principal
// fetch, route-table materialisation, route registration, and re-dispatch
// of the original navigation. The loading and title guards are side-effect
// only — they drive UI chrome (progress indicator, document title) and never
// change a navigation's outcome.
//
// Setup wires all three onto a router in the reference order.
package guard
