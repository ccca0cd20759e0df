package requestdto

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/core/dto"
	"github.com/dmitrymomot/requestdto/core/logger"
)

// Response renders HTTP responses. Implementations should set headers, status, and body.
// Rendering errors are handled by the adapter's error handler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a request whose DTO has already been resolved.
type HandlerFunc[D any] func(ctx *Context, in D) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler func(ctx *Context, err error)

// ParamsFunc extracts the path variables matched by the host router.
type ParamsFunc func(r *http.Request) map[string]string

// Adapter mounts DTO-resolving handlers on a host router.
type Adapter struct {
	resolver     *dto.Resolver
	encoder      *codec.Encoder
	errorHandler ErrorHandler
	params       ParamsFunc
	maxBody      int64
	log          *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithErrorHandler replaces the JSON error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Adapter) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithParamsFunc replaces chi path variable extraction.
func WithParamsFunc(fn ParamsFunc) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.params = fn
		}
	}
}

// WithMaxBodySize caps request bodies read by the adapter, overriding the
// resolver configuration. Zero disables the limit.
func WithMaxBodySize(n int64) Option {
	return func(a *Adapter) { a.maxBody = n }
}

// WithLogger sets the logger used for failed requests.
func WithLogger(log *slog.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAdapter creates an adapter around res. Responses are encoded with the
// resolver's codecs and pass through its response body advice.
func NewAdapter(res *dto.Resolver, opts ...Option) *Adapter {
	a := &Adapter{
		resolver:     res,
		encoder:      codec.NewEncoder(res.Codecs(), res.Advice()),
		errorHandler: defaultErrorHandler,
		params:       ChiParams,
		maxBody:      res.Config().MaxBodySize,
		log:          logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resolver returns the resolver behind the adapter.
func (a *Adapter) Resolver() *dto.Resolver { return a.resolver }

// Handle returns an http.HandlerFunc that resolves the DTO described by decl
// and passes it to h. The declaration is checked immediately; Handle panics
// on configuration errors so a broken route fails at startup.
func Handle[D any](a *Adapter, name string, decl dto.Declaration, h HandlerFunc[D]) http.HandlerFunc {
	if err := a.resolver.Check(decl); err != nil {
		panic(fmt.Errorf("requestdto: handler %s: %w", name, err))
	}
	param := dto.Param{Name: name, DTO: &decl}

	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}
		ctx := NewContext(rw, r, WithParams(a.params(r)), WithBodyLimit(a.maxBody))

		in, err := dto.ResolveAs[D](ctx, a.resolver, param, ctx)
		if err != nil {
			a.fail(ctx, name, err)
			return
		}

		resp := h(ctx, in)
		if resp == nil {
			a.fail(ctx, name, ErrNilResponse)
			return
		}
		if err := resp.Render(rw, r.WithContext(withEncoder(r.Context(), a.encoder))); err != nil {
			a.fail(ctx, name, err)
		}
	}
}

func (a *Adapter) fail(ctx *Context, name string, err error) {
	level := slog.LevelWarn
	if kind := dto.KindOf(err); kind == dto.KindInternal || kind == dto.KindConfiguration {
		level = slog.LevelError
	}
	r := ctx.Request()
	a.log.LogAttrs(ctx, level, "request failed",
		logger.Component(name),
		logger.StatusCode(ErrorFrom(err).Status),
		logger.Group("request",
			logger.RequestID(ctx.RequestID()),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.ContentType(ctx.ContentType()),
			logger.BytesIn(r.ContentLength),
		),
		logger.Error(err),
	)
	a.errorHandler(ctx, err)
}

// LoadConfig reads the resolver configuration from the environment.
func LoadConfig() (dto.Config, error) {
	return dto.LoadConfig()
}
