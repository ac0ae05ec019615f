// Package httpclient implements the outbound HTTP pipeline.
//
// Every call passes two interceptor stages. On the way out: GET requests
// gain a cache-busting timestamp parameter, endpoints on the exempt
// allow-list (the login endpoint) pass through untouched, and everything
// else has the bearer credential attached — or is aborted before the
// network, with a redirect-to-login side effect, when no credential exists.
//
// On the way back, the pipeline resolves instead of rejecting: success
// bodies are unwrapped to their payload, and transport or server failures
// are normalised into a Result carrying a {code, message} pair. No error
// escapes the pipeline boundary as a Go error; callers inspect Result.Code.
package httpclient
