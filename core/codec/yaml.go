package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const MediaTypeYAML = "application/yaml"

type yamlCodec struct{ settings }

// YAML returns the YAML codec backed by gopkg.in/yaml.v3. Only a single
// document is accepted.
func YAML(opts ...Option) Codec {
	return yamlCodec{newSettings(opts)}
}

func (yamlCodec) ContentType() string { return MediaTypeYAML }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

func (c yamlCodec) Unmarshal(data []byte, v any) error {
	if err := c.checkSize(data); err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(c.strict)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrDecode)
		}
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: more than one YAML document", ErrDecode)
	}

	return c.finish(v)
}
