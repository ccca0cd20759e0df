package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const MediaTypeJSON = "application/json"

type jsonCodec struct{ settings }

// JSON returns the JSON codec. Decoding is strict by default: unknown fields
// and data after the first JSON value are rejected.
func JSON(opts ...Option) Codec {
	return jsonCodec{newSettings(opts)}
}

func (jsonCodec) ContentType() string { return MediaTypeJSON }

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	if err := c.checkSize(data); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if c.strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrDecode)
		}
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	// Only one JSON value per body.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrDecode)
	}

	return c.finish(v)
}
