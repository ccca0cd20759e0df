package dto

import (
	"errors"

	"github.com/dmitrymomot/requestdto/core/advice"
	"github.com/dmitrymomot/requestdto/core/binder"
	"github.com/dmitrymomot/requestdto/core/codec"
)

var (
	// Configuration errors. They indicate a wrong declaration or registration
	// and fail every request the same way until fixed.
	ErrNotSupported        = errors.New("parameter has no DTO declaration")
	ErrComponentNotFound   = errors.New("component not found")
	ErrUnknownType         = errors.New("type identifier not registered")
	ErrBuilderInputType    = errors.New("builder input type incompatible")
	ErrBuilderOutputType   = errors.New("builder output type incompatible")
	ErrValidatorType       = errors.New("validator supported type incompatible")
	ErrDuplicateType       = errors.New("type identifier already registered")
	ErrDuplicateComponent  = errors.New("component already registered")
	ErrInvalidRegistration = errors.New("invalid registration")

	// Request errors.
	ErrBodyRead             = errors.New("failed to read request body")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrDeserialization      = errors.New("failed to deserialize request body")
	ErrBinding              = errors.New("failed to bind request values")
	ErrValidation           = errors.New("validation failed")
	ErrBuild                = errors.New("failed to build DTO")
)

// Kind is the closed set of failure classes a resolution can end with.
type Kind uint8

const (
	KindNone Kind = iota
	KindConfiguration
	KindMalformed
	KindUnsupportedMedia
	KindValidation
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfiguration:
		return "configuration"
	case KindMalformed:
		return "malformed"
	case KindUnsupportedMedia:
		return "unsupported_media"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// KindOf classifies an error returned by the resolver. Nil maps to KindNone
// and unknown errors to KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotSupported),
		errors.Is(err, ErrComponentNotFound),
		errors.Is(err, ErrUnknownType),
		errors.Is(err, ErrBuilderInputType),
		errors.Is(err, ErrBuilderOutputType),
		errors.Is(err, ErrValidatorType),
		errors.Is(err, ErrDuplicateType),
		errors.Is(err, ErrDuplicateComponent),
		errors.Is(err, ErrInvalidRegistration):
		return KindConfiguration
	case errors.Is(err, ErrUnsupportedMediaType):
		return KindUnsupportedMedia
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, binder.ErrNotSettable):
		return KindInternal
	case errors.Is(err, ErrDeserialization),
		errors.Is(err, binder.ErrConversion),
		errors.Is(err, advice.ErrAdvice),
		errors.Is(err, codec.ErrBodyTooLarge):
		return KindMalformed
	default:
		return KindInternal
	}
}
