package devserver

import (
	"encoding/json"
	"net/http"
)

// Business result codes carried inside the response envelope, independent of
// the HTTP status.
const (
	codeOK      = 0
	codeUnknown = -1
)

// envelope is the response body shape the client runtime unwraps.
type envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeEnvelope writes an envelope response with the given HTTP status.
func writeEnvelope(w http.ResponseWriter, status, code int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	json.NewEncoder(w).Encode(envelope{Code: code, Data: data, Message: message})
}

// writeOK writes a successful envelope (HTTP 200, business code 0).
func writeOK(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, codeOK, data, "")
}

// writeFail writes a business failure inside an HTTP 200, matching the
// backend contract for credential and lookup failures.
func writeFail(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusOK, codeUnknown, nil, message)
}
