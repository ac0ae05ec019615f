package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/qszone/naviguard/internal/infrastructure/logging"
)

// defaultTimeout is the fixed per-request timeout (12 seconds in the
// reference configuration).
const defaultTimeout = 12 * time.Second

// now is a small indirection to allow test stubbing of the cache-busting
// timestamp.
var now = time.Now

// TokenSource supplies the current bearer credential, if any.
type TokenSource interface {
	Token() (string, bool)
}

// Options configures a Client.
type Options struct {
	// BaseURL is prepended to every request path.
	BaseURL string

	// Timeout overrides the default 12-second request timeout.
	Timeout time.Duration

	// Tokens supplies the credential injected on non-exempt requests.
	Tokens TokenSource

	// Exempt lists endpoints that pass through without a credential,
	// e.g. POST /auth/login.
	Exempt []Endpoint

	// OnUnauthenticated runs when a non-exempt request finds no credential,
	// before the call resolves with MsgNotLoggedIn. Typically redirects the
	// navigation layer to the login path.
	OnUnauthenticated func()

	Logger *logging.Logger
}

// Client is the outbound HTTP pipeline: request decoration (cache-busting,
// credential injection) on the way out, and normalisation of transport and
// server errors into a uniform Result on the way back.
type Client struct {
	base              string
	http              *http.Client
	tokens            TokenSource
	exempt            []Endpoint
	onUnauthenticated func()
	logger            *logging.Logger
}

// New creates a Client from options. Logger and Tokens are required.
func New(opts Options) (*Client, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:              strings.TrimRight(opts.BaseURL, "/"),
		http:              &http.Client{Timeout: timeout},
		tokens:            opts.Tokens,
		exempt:            opts.Exempt,
		onUnauthenticated: opts.OnUnauthenticated,
		logger:            opts.Logger.With("component", "httpclient"),
	}, nil
}

// Do runs one request through the pipeline and always returns a Result.
//
// Request stage, in order: GET requests gain a cache-busting `t` timestamp
// merged into their query; exempt endpoints pass through unmodified;
// everything else gets the bearer credential attached, or is aborted before
// the network when no credential exists.
//
// Response stage: 2xx responses are unwrapped to the envelope's payload;
// failures are normalised to a {code, message} pair with known codes mapped
// to default user-facing messages.
func (c *Client) Do(ctx context.Context, req Request) *Result {
	method := strings.ToUpper(req.Method)

	query := url.Values{}
	for k, vs := range req.Query {
		query[k] = vs
	}
	// Cache-busting: tag idempotent reads with a timestamp so intermediaries
	// never serve a stale copy.
	if method == http.MethodGet {
		query.Set("t", strconv.FormatInt(now().UnixMilli(), 10))
	}

	header := http.Header{}
	for k, vs := range req.Header {
		header[k] = vs
	}

	if !c.isExempt(method, req.Path) {
		token, ok := c.tokens.Token()
		if !ok {
			// No credential: the request must not reach the network.
			c.logger.Warn("request aborted: no credential",
				"method", method,
				"path", req.Path,
			)
			if c.onUnauthenticated != nil {
				c.onUnauthenticated()
			}
			return &Result{
				Code:    CodeUnknown,
				Message: MsgNotLoggedIn,
				Kind:    FailureUnauthenticated,
			}
		}
		// Caller-supplied Authorization wins.
		if header.Get("Authorization") == "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return c.transportFailure(method, req.Path, fmt.Errorf("encoding request body: %w", err))
		}
		body = bytes.NewReader(data)
		header.Set("Content-Type", "application/json")
	}

	target := c.base + req.Path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return c.transportFailure(method, req.Path, err)
	}
	httpReq.Header = header

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.transportFailure(method, req.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // fully consumed below

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(method, req.Path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.unwrapSuccess(method, req.Path, raw)
	}
	return c.normalizeError(method, req.Path, raw)
}

// isExempt reports whether method+path is on the credential-exempt allow-list.
func (c *Client) isExempt(method, path string) bool {
	for _, e := range c.exempt {
		if strings.ToUpper(e.Method) == method && e.Path == path {
			return true
		}
	}
	return false
}

// unwrapSuccess decodes a 2xx body and hands callers only the envelope
// payload. A non-zero application code inside a 2xx response is still a
// server failure from the caller's perspective.
func (c *Client) unwrapSuccess(method, path string, raw []byte) *Result {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return c.transportFailure(method, path, fmt.Errorf("decoding response: %w", err))
	}

	code := CodeUnknown
	if env.Code != nil {
		code = *env.Code
	}

	res := &Result{
		Code:    code,
		Message: env.Message,
		Data:    env.Data,
	}
	if !res.OK() {
		res.Kind = FailureServer
	}
	return res
}

// normalizeError extracts a {code, message} pair from a non-2xx body,
// synthesising CodeUnknown when no code is present and mapping known codes
// to default user-facing messages when the server supplied none.
func (c *Client) normalizeError(method, path string, raw []byte) *Result {
	var env envelope
	_ = json.Unmarshal(raw, &env) // a malformed error body behaves as codeless

	res := &Result{Kind: FailureServer}
	if env.Code == nil {
		res.Code = CodeUnknown
		res.Message = MsgInterfaceError
	} else {
		res.Code = *env.Code
		res.Message = env.Message
		if res.Message == "" {
			switch res.Code {
			case http.StatusUnauthorized:
				res.Message = MsgSessionExpired
			case http.StatusForbidden:
				res.Message = MsgForbidden
			case http.StatusNotFound:
				res.Message = MsgNotFound
			default:
				res.Message = MsgUnknown
			}
		}
	}

	res.Err = fmt.Errorf("server error %d on %s %s", res.Code, method, path)
	c.logger.Error("request failed",
		"method", method,
		"path", path,
		"code", res.Code,
		"message", res.Message,
	)
	return res
}

// transportFailure normalises an error that produced no server response.
func (c *Client) transportFailure(method, path string, err error) *Result {
	c.logger.Error("transport failure",
		"method", method,
		"path", path,
		"error", err,
	)
	return &Result{
		Code:    CodeUnknown,
		Message: MsgInterfaceError,
		Kind:    FailureTransport,
		Err:     err,
	}
}
