package dto

import (
	"errors"
	"log/slog"

	"github.com/dmitrymomot/requestdto/core/advice"
	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/core/validator"
)

// ConstraintValidator checks an intermediate object before it reaches the
// builder. It should report every violation, preferably as
// validator.ValidationErrors.
type ConstraintValidator func(v any) error

// ValidateStruct is the default ConstraintValidator. It applies the
// `validate` struct tags and skips non-struct intermediate types.
func ValidateStruct(v any) error {
	err := validator.ValidateStruct(v)
	if errors.Is(err, validator.ErrInvalidTarget) {
		return nil
	}
	return err
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for extraction diagnostics and advice discovery.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithConfig replaces the default body configuration.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) { r.cfg = cfg }
}

// WithCodecs replaces the codec registry derived from the configuration.
func WithCodecs(codecs *codec.Registry) Option {
	return func(r *Resolver) { r.codecs = codecs }
}

// WithAdvice discovers body advice among the components of src.
func WithAdvice(src advice.Source) Option {
	return func(r *Resolver) { r.adviceSrc = src }
}

// WithConstraintValidator replaces ValidateStruct.
func WithConstraintValidator(fn ConstraintValidator) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.validate = fn
		}
	}
}
