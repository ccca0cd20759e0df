package dto

import (
	"context"
	"fmt"
	"net/http"
)

// TypeID is a stable identifier registered for a Go type.
type TypeID string

// ComponentID identifies a builder or validator in the Registry.
type ComponentID string

// Declaration pairs an intermediate input type with the builder and optional
// validator that turn it into a DTO. Declarations are immutable once created.
type Declaration struct {
	Input     TypeID
	Builder   ComponentID
	Validator ComponentID
}

// Param is a handler parameter as seen by the resolver.
type Param struct {
	Name string
	DTO  *Declaration
}

// Request is the router-provided view of an HTTP request. Body must return
// the same bytes on every call within one request.
type Request interface {
	Header() http.Header
	PathValues() map[string]string
	RawQuery() string
	ContentType() string
	Body() ([]byte, error)
}

// Builder turns an intermediate object into a DTO.
type Builder interface {
	InputType() TypeID
	OutputType() TypeID
	Build(ctx context.Context, in any) (any, error)
}

// Validator checks a built DTO.
type Validator interface {
	SupportedType() TypeID
	Validate(ctx context.Context, dto any) error
}

type builderFunc[I, D any] struct {
	in, out TypeID
	fn      func(context.Context, *I) (D, error)
}

// NewBuilder adapts a typed function to Builder. in and out must be the
// identifiers under which *I's base type I and D are registered.
func NewBuilder[I, D any](in, out TypeID, fn func(ctx context.Context, in *I) (D, error)) Builder {
	return builderFunc[I, D]{in: in, out: out, fn: fn}
}

func (b builderFunc[I, D]) InputType() TypeID  { return b.in }
func (b builderFunc[I, D]) OutputType() TypeID { return b.out }

// accepts reports whether in is the *I the builder consumes.
func (b builderFunc[I, D]) accepts(in any) bool {
	_, ok := in.(*I)
	return ok
}

func (b builderFunc[I, D]) Build(ctx context.Context, in any) (any, error) {
	typed, ok := in.(*I)
	if !ok {
		return nil, fmt.Errorf("%w: want %T, got %T", ErrBuilderInputType, (*I)(nil), in)
	}
	return b.fn(ctx, typed)
}

type validatorFunc[D any] struct {
	supported TypeID
	fn        func(context.Context, D) error
}

// NewValidator adapts a typed function to Validator.
func NewValidator[D any](supported TypeID, fn func(ctx context.Context, dto D) error) Validator {
	return validatorFunc[D]{supported: supported, fn: fn}
}

func (v validatorFunc[D]) SupportedType() TypeID { return v.supported }

func (v validatorFunc[D]) Validate(ctx context.Context, dto any) error {
	typed, ok := dto.(D)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrValidatorType, dto)
	}
	return v.fn(ctx, typed)
}
