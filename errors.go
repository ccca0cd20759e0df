package requestdto

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/requestdto/core/codec"
	"github.com/dmitrymomot/requestdto/core/dto"
	"github.com/dmitrymomot/requestdto/core/validator"
)

// Error represents a structured error response that implements the error interface.
type Error struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e Error) WithDetails(details map[string]any) Error {
	e.Details = details
	return e
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	ErrBadRequest            = Error{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: http.StatusText(http.StatusBadRequest)}
	ErrRequestEntityTooLarge = Error{Status: http.StatusRequestEntityTooLarge, Code: "REQUEST_ENTITY_TOO_LARGE", Message: http.StatusText(http.StatusRequestEntityTooLarge)}
	ErrUnsupportedMediaType  = Error{Status: http.StatusUnsupportedMediaType, Code: "UNSUPPORTED_MEDIA_TYPE", Message: http.StatusText(http.StatusUnsupportedMediaType)}
	ErrUnprocessableEntity   = Error{Status: http.StatusUnprocessableEntity, Code: "UNPROCESSABLE_ENTITY", Message: http.StatusText(http.StatusUnprocessableEntity)}
	ErrInternalServerError   = Error{Status: http.StatusInternalServerError, Code: "INTERNAL_SERVER_ERROR", Message: http.StatusText(http.StatusInternalServerError)}
)

// ErrNilResponse is reported when a handler returns a nil Response.
var ErrNilResponse = errors.New("handler returned nil response")

// ErrorFrom maps a resolution or handler error to a response error.
//
//	configuration error       -> 500
//	malformed request         -> 400 (413 for oversized bodies)
//	unsupported media type    -> 415
//	validation failure        -> 422, every violation in Details["errors"]
//	anything else             -> 500
//
// An Error found in the chain is returned as is.
func ErrorFrom(err error) Error {
	var appErr Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch dto.KindOf(err) {
	case dto.KindMalformed:
		if errors.Is(err, codec.ErrBodyTooLarge) {
			return ErrRequestEntityTooLarge
		}
		return ErrBadRequest.WithMessage(err.Error())
	case dto.KindUnsupportedMedia:
		return ErrUnsupportedMediaType
	case dto.KindValidation:
		if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
			return ErrUnprocessableEntity.WithDetails(map[string]any{"errors": ve})
		}
		return ErrUnprocessableEntity.WithMessage(err.Error())
	default:
		return ErrInternalServerError
	}
}

// defaultErrorHandler writes the mapped error as JSON unless a response was
// already started.
func defaultErrorHandler(ctx *Context, err error) {
	w := ctx.ResponseWriter()

	// Prevent double-writing responses which causes HTTP protocol errors
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	appErr := ErrorFrom(err)
	_ = JSONWithStatus(appErr, appErr.Status).Render(w, ctx.Request())
}
