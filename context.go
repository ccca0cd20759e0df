package requestdto

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/middleware"
)

// RequestIDHeader is read for the request ID; a random one is generated when absent.
const RequestIDHeader = "X-Request-ID"

// Context is the per-request context handed to handlers. It delegates the
// context.Context methods to the request's context and implements
// dto.Request, caching the body after the first read.
type Context struct {
	w         http.ResponseWriter
	r         *http.Request
	params    map[string]string
	requestID string
	maxBody   int64

	bodyRead bool
	body     []byte
	bodyErr  error
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithParams sets the path variables matched by the router.
func WithParams(params map[string]string) ContextOption {
	return func(c *Context) {
		for k, v := range params {
			c.params[k] = v
		}
	}
}

// WithBodyLimit caps the body read by Body. Zero disables the limit.
func WithBodyLimit(n int64) ContextOption {
	return func(c *Context) { c.maxBody = n }
}

// NewContext creates a Context for one request.
func NewContext(w http.ResponseWriter, r *http.Request, opts ...ContextOption) *Context {
	c := &Context{
		w:       w,
		r:       r,
		params:  make(map[string]string),
		maxBody: codec.DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChiParams returns the URL parameters chi matched for r.
func ChiParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

// FromChi creates a Context whose path variables come from chi's route context.
func FromChi(w http.ResponseWriter, r *http.Request, opts ...ContextOption) *Context {
	return NewContext(w, r, append([]ContextOption{WithParams(ChiParams(r))}, opts...)...)
}

// Deadline delegates to r.Context().
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to r.Context().
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to r.Context().
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value delegates to r.Context().
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the *http.Request associated with the context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter associated with the context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the path variable by key.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// RequestID returns the ID assigned by middleware.RequestID, the
// X-Request-ID header value, or a generated UUID, in that order of
// preference. The value is stable for the life of the context.
func (c *Context) RequestID() string {
	if c.requestID != "" {
		return c.requestID
	}
	if id, ok := middleware.GetRequestID(c.r.Context()); ok && id != "" {
		c.requestID = id
	} else if id := c.r.Header.Get(RequestIDHeader); id != "" {
		c.requestID = id
	} else {
		c.requestID = uuid.NewString()
	}
	return c.requestID
}

// Header returns the request headers.
func (c *Context) Header() http.Header {
	return c.r.Header
}

// PathValues returns the path variables matched by the router.
func (c *Context) PathValues() map[string]string {
	return c.params
}

// RawQuery returns the undecoded query string.
func (c *Context) RawQuery() string {
	return c.r.URL.RawQuery
}

// ContentType returns the Content-Type header.
func (c *Context) ContentType() string {
	return c.r.Header.Get("Content-Type")
}

// Body reads the request body once and returns the cached bytes (and error)
// on every later call. Bodies larger than the configured limit fail with
// codec.ErrBodyTooLarge.
func (c *Context) Body() ([]byte, error) {
	if c.bodyRead {
		return c.body, c.bodyErr
	}
	c.bodyRead = true

	if c.r.Body == nil || c.r.Body == http.NoBody {
		return nil, nil
	}

	var reader io.Reader = c.r.Body
	if c.maxBody > 0 {
		// One extra byte tells an exact-limit body from an oversized one.
		reader = io.LimitReader(c.r.Body, c.maxBody+1)
	}

	c.body, c.bodyErr = io.ReadAll(reader)
	if c.bodyErr == nil && c.maxBody > 0 && int64(len(c.body)) > c.maxBody {
		c.body = nil
		c.bodyErr = fmt.Errorf("%w: limit is %d bytes", codec.ErrBodyTooLarge, c.maxBody)
	}
	return c.body, c.bodyErr
}
