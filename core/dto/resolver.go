package dto

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/requestdto/core/advice"
	"github.com/dmitrymomot/requestdto/core/binder"
	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/core/logger"
	"github.com/dmitrymomot/requestdto/core/validator"
)

// Resolver turns requests into DTOs following a Declaration:
// body decoding, header, path and query extraction, constraint validation,
// building and optional DTO validation. It is safe for concurrent use.
type Resolver struct {
	registry  *Registry
	cfg       Config
	codecs    *codec.Registry
	adviceSrc advice.Source
	decoder   *codec.Decoder
	handles   advice.Handles
	validate  ConstraintValidator
	log       *slog.Logger
}

// NewResolver creates a resolver backed by registry.
func NewResolver(registry *Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		cfg:      DefaultConfig(),
		validate: ValidateStruct,
		log:      logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.registry == nil {
		r.registry = NewRegistry()
	}
	if r.codecs == nil {
		r.codecs = r.cfg.codecs()
	}
	r.handles = advice.Lookup(r.adviceSrc, advice.WithLogger(r.log))
	r.decoder = codec.NewDecoder(r.codecs, r.handles)
	return r
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *Registry { return r.registry }

// Advice returns the body advice discovered for the resolver.
func (r *Resolver) Advice() advice.Handles { return r.handles }

// Config returns the body configuration of the resolver.
func (r *Resolver) Config() Config { return r.cfg }

// Codecs returns the codec registry used for request bodies.
func (r *Resolver) Codecs() *codec.Registry { return r.codecs }

// Supports reports whether p carries a DTO declaration.
func (r *Resolver) Supports(p Param) bool {
	return p.DTO != nil
}

type plan struct {
	input     inputEntry
	builder   Builder
	output    outputEntry
	validator Validator
	supported outputEntry
}

// Check verifies a declaration against the registry without a request: the
// builder and validator exist, the builder consumes the declared input type,
// and every type identifier involved is registered. Call it at startup.
func (r *Resolver) Check(decl Declaration) error {
	_, err := r.plan(decl)
	return err
}

// typedBuilder is implemented by builders created with NewBuilder, whose Go
// input type can be checked before any request is read.
type typedBuilder interface {
	accepts(in any) bool
}

func (r *Resolver) plan(decl Declaration) (plan, error) {
	var p plan

	b, err := r.registry.Builder(decl.Builder)
	if err != nil {
		return p, err
	}
	if b.InputType() != decl.Input {
		return p, fmt.Errorf("%w: builder %s consumes %s, declaration provides %s",
			ErrBuilderInputType, decl.Builder, b.InputType(), decl.Input)
	}
	if p.input, err = r.registry.input(decl.Input); err != nil {
		return p, err
	}
	if tb, ok := b.(typedBuilder); ok {
		if in := p.input.new(); !tb.accepts(in) {
			return p, fmt.Errorf("%w: builder %s does not consume %T registered as %s",
				ErrBuilderInputType, decl.Builder, in, decl.Input)
		}
	}
	if p.output, err = r.registry.output(b.OutputType()); err != nil {
		return p, fmt.Errorf("builder %s output: %w", decl.Builder, err)
	}
	p.builder = b

	if decl.Validator == "" {
		return p, nil
	}
	if p.validator, err = r.registry.Validator(decl.Validator); err != nil {
		return p, err
	}
	if p.supported, err = r.registry.output(p.validator.SupportedType()); err != nil {
		return p, fmt.Errorf("validator %s: %w", decl.Validator, err)
	}
	return p, nil
}

// Resolve produces the DTO for p from req. It returns ErrNotSupported when p
// has no declaration. No DTO is returned alongside an error.
func (r *Resolver) Resolve(ctx context.Context, p Param, req Request) (any, error) {
	if p.DTO == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotSupported, p.Name)
	}
	decl := *p.DTO

	pl, err := r.plan(decl)
	if err != nil {
		return nil, err
	}

	log := r.log.With(
		logger.TypeID(string(decl.Input)),
		logger.Component(string(decl.Builder)),
	)

	in, err := r.decode(ctx, pl.input, req)
	if err != nil {
		return nil, err
	}

	diags, err := pl.input.bind(in, binder.Source{
		Header:   req.Header(),
		Path:     req.PathValues(),
		RawQuery: req.RawQuery(),
	}, r.cfg.Sanitize)
	diags.Log(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBinding, err)
	}

	if err := r.validate(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	out, err := pl.builder.Build(ctx, in)
	if err != nil {
		if validator.IsValidationError(err) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrBuild, decl.Builder, err)
	}
	if !pl.output.is(out) {
		return nil, fmt.Errorf("%w: builder %s declared %s, produced %T",
			ErrBuilderOutputType, decl.Builder, pl.output.id, out)
	}

	if pl.validator == nil {
		return out, nil
	}
	if !pl.supported.is(out) {
		return nil, fmt.Errorf("%w: validator %s supports %s, got %T",
			ErrValidatorType, decl.Validator, pl.supported.id, out)
	}
	if err := pl.validator.Validate(ctx, out); err != nil {
		if errors.Is(err, ErrValidatorType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return out, nil
}

// decode returns a fresh intermediate object, filled from the body when one is present.
func (r *Resolver) decode(ctx context.Context, in inputEntry, req Request) (any, error) {
	body, err := req.Body()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyRead, err)
	}

	dst := in.new()
	if len(bytes.TrimSpace(body)) == 0 {
		return dst, nil
	}

	if err := r.decoder.Decode(ctx, req.ContentType(), body, dst); err != nil {
		if errors.Is(err, codec.ErrUnsupportedMediaType) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	return dst, nil
}

// ResolveAs resolves p and asserts the DTO to D.
func ResolveAs[D any](ctx context.Context, r *Resolver, p Param, req Request) (D, error) {
	var zero D
	v, err := r.Resolve(ctx, p, req)
	if err != nil {
		return zero, err
	}
	d, ok := v.(D)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrBuilderOutputType, zero, v)
	}
	return d, nil
}
