// Package devserver implements the embedded development API server the
// client runtime talks to when no real backend is configured.
//
// It serves the backend contract the runtime is written against: JSON
// envelope responses carrying a business code, fixture accounts (admin,
// editor, and a roleless guest fallback), and HS256 JWT bearer credentials.
// Credential and lookup failures travel as business codes inside HTTP 200
// responses, matching the contract's error model.
package devserver
