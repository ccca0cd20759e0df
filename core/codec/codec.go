package codec

import (
	"errors"
	"fmt"
	"mime"
	"strings"
)

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the media type handled by the codec, e.g. "application/json".
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrDecode               = errors.New("failed to decode body")
	ErrEncode               = errors.New("failed to encode body")
	ErrBodyTooLarge         = errors.New("body too large")
)

// DefaultMaxSize is the default maximum body size accepted by the codecs (1MB).
const DefaultMaxSize = 1 << 20

// Option configures a codec.
type Option func(*settings)

type settings struct {
	strict   bool
	sanitize bool
	maxSize  int64
}

func newSettings(opts []Option) settings {
	s := settings{strict: true, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Strict makes decoders reject unknown fields. It is on by default for JSON
// and YAML; XML and form decoding ignore it.
func Strict(on bool) Option {
	return func(s *settings) { s.strict = on }
}

// MaxSize limits the size of decoded bodies. Zero or a negative value disables the limit.
func MaxSize(n int64) Option {
	return func(s *settings) { s.maxSize = n }
}

// Sanitize strips control characters from every decoded string.
func Sanitize(on bool) Option {
	return func(s *settings) { s.sanitize = on }
}

func (s settings) checkSize(data []byte) error {
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrBodyTooLarge, len(data), s.maxSize)
	}
	return nil
}

func (s settings) finish(v any) error {
	if s.sanitize {
		sanitizeStruct(v)
	}
	return nil
}

// MediaType strips parameters from a Content-Type value and lower-cases it:
// "Application/JSON; charset=utf-8" becomes "application/json".
func MediaType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
