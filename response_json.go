package requestdto

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/requestdto/core/codec"
)

type encoderKey struct{}

func withEncoder(ctx context.Context, enc *codec.Encoder) context.Context {
	return context.WithValue(ctx, encoderKey{}, enc)
}

func encoderFrom(ctx context.Context) *codec.Encoder {
	enc, _ := ctx.Value(encoderKey{}).(*codec.Encoder)
	return enc
}

// JSON creates an application/json response with 200 OK status.
// Inside a Handle handler the body passes through the response body advice.
func JSON(v any) Response {
	return &jsonResponse{
		data:       v,
		statusCode: http.StatusOK,
	}
}

// JSONWithStatus creates an application/json response with custom status code.
func JSONWithStatus(v any, status int) Response {
	return &jsonResponse{
		data:       v,
		statusCode: status,
	}
}

// Status creates a response carrying only a status code.
func Status(code int) Response {
	return &jsonResponse{statusCode: code, empty: true}
}

// NoContent creates a 204 No Content response.
func NoContent() Response {
	return Status(http.StatusNoContent)
}

type jsonResponse struct {
	data       any
	statusCode int
	empty      bool
}

// Render encodes the data and writes it. Encoding happens before the status
// line so an encoding failure can still be reported by the error handler.
func (r *jsonResponse) Render(w http.ResponseWriter, req *http.Request) error {
	status := r.statusCode
	if status == 0 {
		if r.data == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}

	// 204 and 304 carry no body
	if r.empty || status == http.StatusNoContent || status == http.StatusNotModified {
		w.WriteHeader(status)
		return nil
	}

	var body []byte
	var err error
	if enc := encoderFrom(req.Context()); enc != nil {
		body, _, err = enc.Encode(req.Context(), codec.MediaTypeJSON, r.data)
	} else {
		body, err = json.Marshal(r.data)
	}
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}
