package codec

import (
	"context"

	"github.com/dmitrymomot/requestdto/core/advice"
)

// Decoder decodes request bodies with the codec matching their content type,
// running request body advice around the codec.
type Decoder struct {
	codecs *Registry
	advice advice.Handles
}

// NewDecoder creates a decoder. A nil registry means Default().
func NewDecoder(codecs *Registry, handles advice.Handles) *Decoder {
	if codecs == nil {
		codecs = Default()
	}
	return &Decoder{codecs: codecs, advice: handles}
}

// Decode decodes body into v.
func (d *Decoder) Decode(ctx context.Context, contentType string, body []byte, v any) error {
	c, err := d.codecs.Lookup(contentType)
	if err != nil {
		return err
	}
	mt := c.ContentType()

	body, err = d.advice.BeforeBodyRead(ctx, mt, body)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(body, v); err != nil {
		return err
	}
	return d.advice.AfterBodyRead(ctx, mt, v)
}

// Encoder encodes response bodies and runs response body advice on the result.
type Encoder struct {
	codecs *Registry
	advice advice.Handles
}

// NewEncoder creates an encoder. A nil registry means Default().
func NewEncoder(codecs *Registry, handles advice.Handles) *Encoder {
	if codecs == nil {
		codecs = Default()
	}
	return &Encoder{codecs: codecs, advice: handles}
}

// Encode marshals v for contentType and returns the body with the media type
// actually produced.
func (e *Encoder) Encode(ctx context.Context, contentType string, v any) ([]byte, string, error) {
	c, err := e.codecs.Lookup(contentType)
	if err != nil {
		return nil, "", err
	}
	mt := c.ContentType()

	body, err := c.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	body, err = e.advice.BeforeBodyWrite(ctx, mt, body)
	if err != nil {
		return nil, "", err
	}
	return body, mt, nil
}
