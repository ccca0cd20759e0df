package codec

import (
	"encoding/xml"
	"fmt"
)

const MediaTypeXML = "application/xml"

type xmlCodec struct{ settings }

// XML returns the XML codec.
func XML(opts ...Option) Codec {
	return xmlCodec{newSettings(opts)}
}

func (xmlCodec) ContentType() string { return MediaTypeXML }

func (xmlCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

func (c xmlCodec) Unmarshal(data []byte, v any) error {
	if err := c.checkSize(data); err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return c.finish(v)
}
