package advice

import (
	"context"
	"errors"
	"fmt"
)

// ErrAdvice wraps failures returned by advice components.
var ErrAdvice = errors.New("body advice failed")

// RequestBodyAdvice intercepts request bodies around decoding.
type RequestBodyAdvice interface {
	// BeforeBodyRead may replace the raw body before it is decoded.
	BeforeBodyRead(ctx context.Context, contentType string, body []byte) ([]byte, error)
	// AfterBodyRead observes or adjusts the decoded value.
	AfterBodyRead(ctx context.Context, contentType string, v any) error
}

// ResponseBodyAdvice intercepts encoded response bodies before they are written.
type ResponseBodyAdvice interface {
	BeforeBodyWrite(ctx context.Context, contentType string, body []byte) ([]byte, error)
}

// RequestFuncs adapts functions to RequestBodyAdvice. Nil fields are no-ops.
type RequestFuncs struct {
	Before func(ctx context.Context, contentType string, body []byte) ([]byte, error)
	After  func(ctx context.Context, contentType string, v any) error
}

func (f RequestFuncs) BeforeBodyRead(ctx context.Context, contentType string, body []byte) ([]byte, error) {
	if f.Before == nil {
		return body, nil
	}
	return f.Before(ctx, contentType, body)
}

func (f RequestFuncs) AfterBodyRead(ctx context.Context, contentType string, v any) error {
	if f.After == nil {
		return nil
	}
	return f.After(ctx, contentType, v)
}

// ResponseFunc adapts a function to ResponseBodyAdvice.
type ResponseFunc func(ctx context.Context, contentType string, body []byte) ([]byte, error)

func (f ResponseFunc) BeforeBodyWrite(ctx context.Context, contentType string, body []byte) ([]byte, error) {
	return f(ctx, contentType, body)
}

// Handle is one discovered advice component. It holds the request role, the
// response role, or both.
type Handle struct {
	Name     string
	Priority int

	request  RequestBodyAdvice
	response ResponseBodyAdvice
}

// Request returns the request role of the handle.
func (h Handle) Request() (RequestBodyAdvice, bool) { return h.request, h.request != nil }

// Response returns the response role of the handle.
func (h Handle) Response() (ResponseBodyAdvice, bool) { return h.response, h.response != nil }

// Handles is an ordered, read-only list of advice handles.
type Handles []Handle

// Requests returns the request advices in order.
func (hs Handles) Requests() []RequestBodyAdvice {
	var out []RequestBodyAdvice
	for _, h := range hs {
		if h.request != nil {
			out = append(out, h.request)
		}
	}
	return out
}

// Responses returns the response advices in order.
func (hs Handles) Responses() []ResponseBodyAdvice {
	var out []ResponseBodyAdvice
	for _, h := range hs {
		if h.response != nil {
			out = append(out, h.response)
		}
	}
	return out
}

// BeforeBodyRead runs the request advices in order, each one receiving the
// body returned by the previous.
func (hs Handles) BeforeBodyRead(ctx context.Context, contentType string, body []byte) ([]byte, error) {
	for _, h := range hs {
		if h.request == nil {
			continue
		}
		out, err := h.request.BeforeBodyRead(ctx, contentType, body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s before read: %w", ErrAdvice, h.Name, err)
		}
		body = out
	}
	return body, nil
}

// AfterBodyRead runs the request advices in order against the decoded value.
func (hs Handles) AfterBodyRead(ctx context.Context, contentType string, v any) error {
	for _, h := range hs {
		if h.request == nil {
			continue
		}
		if err := h.request.AfterBodyRead(ctx, contentType, v); err != nil {
			return fmt.Errorf("%w: %s after read: %w", ErrAdvice, h.Name, err)
		}
	}
	return nil
}

// BeforeBodyWrite runs the response advices in order.
func (hs Handles) BeforeBodyWrite(ctx context.Context, contentType string, body []byte) ([]byte, error) {
	for _, h := range hs {
		if h.response == nil {
			continue
		}
		out, err := h.response.BeforeBodyWrite(ctx, contentType, body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s before write: %w", ErrAdvice, h.Name, err)
		}
		body = out
	}
	return body, nil
}
