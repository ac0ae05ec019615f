package httpclient

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Application-level result codes. The server envelope carries its own code;
// CodeUnknown is synthesised locally when no code is available.
const (
	CodeOK      = 0
	CodeUnknown = -1
)

// User-facing fallback messages, kept verbatim from the reference UI copy.
// The server's own message always wins when present.
const (
	MsgNotLoggedIn    = "未登录"
	MsgInterfaceError = "接口异常！"
	MsgSessionExpired = "登录已过期"
	MsgForbidden      = "没有权限"
	MsgNotFound       = "资源或接口不存在"
	MsgUnknown        = "未知异常"
)

// FailureKind tags the normalised outcome of a call.
type FailureKind int

const (
	// FailureNone means the call succeeded (Code == CodeOK).
	FailureNone FailureKind = iota

	// FailureUnauthenticated means the request was aborted before the
	// network because no credential was available.
	FailureUnauthenticated

	// FailureTransport means the request never produced a server response
	// (connection refused, timeout, malformed reply).
	FailureTransport

	// FailureServer means the server answered with a non-zero application
	// code or a non-2xx status.
	FailureServer
)

// Endpoint identifies a method+path pair on the credential-exempt allow-list.
// Matching is exact on the declared HTTP method and path.
type Endpoint struct {
	Method string
	Path   string
}

// Request describes one outbound API call.
type Request struct {
	Method string
	Path   string

	// Query parameters; merged with (not replaced by) pipeline additions
	// such as the GET cache-busting timestamp.
	Query url.Values

	// Body is JSON-encoded when non-nil.
	Body any

	// Header carries caller-supplied headers. A caller-set Authorization
	// header wins over pipeline credential injection.
	Header http.Header
}

// Result is the normalised outcome of a call.
//
// The pipeline resolves rather than rejects: transport and server failures
// surface as a non-zero Code with a user-facing Message, never as a Go error
// escaping the pipeline. Callers distinguish failure by inspecting Code (or
// OK()), not by error handling.
type Result struct {
	Code    int
	Message string
	Data    json.RawMessage
	Kind    FailureKind

	// Err preserves the raw underlying error for diagnostics. It is logged
	// by the pipeline and never required for control flow.
	Err error
}

// OK reports whether the call succeeded at the application level.
func (r *Result) OK() bool {
	return r.Code == CodeOK
}

// Decode unmarshals the success payload into out.
func (r *Result) Decode(out any) error {
	return json.Unmarshal(r.Data, out)
}

// envelope is the server's uniform response body: {code, data, message}.
// Code is a pointer so that the absence of a code in an error body can be
// distinguished from code 0.
type envelope struct {
	Code    *int            `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}
