package codec

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps media types to codecs. Bodies without a Content-Type are
// decoded with the default media type.
type Registry struct {
	mu          sync.RWMutex
	codecs      map[string]Codec
	defaultType string
}

// NewRegistry creates a registry with codecs registered under their own
// content types. The first codec's type becomes the default.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[string]Codec, len(codecs))}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Default returns a registry with the JSON, YAML, XML and form codecs, JSON
// being the default. Options apply to every codec.
func Default(opts ...Option) *Registry {
	r := NewRegistry(JSON(opts...), YAML(opts...), XML(opts...), Form(opts...))
	r.Alias("application/x-yaml", MediaTypeYAML)
	r.Alias("text/yaml", MediaTypeYAML)
	r.Alias("text/xml", MediaTypeXML)
	return r
}

// Register adds c under its content type and under any extra media types.
func (r *Registry) Register(c Codec, mediaTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ct := MediaType(c.ContentType())
	r.codecs[ct] = c
	for _, mt := range mediaTypes {
		r.codecs[MediaType(mt)] = c
	}
	if r.defaultType == "" {
		r.defaultType = ct
	}
}

// Alias makes mediaType resolve to the codec registered for target.
func (r *Registry) Alias(mediaType, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.codecs[MediaType(target)]; ok {
		r.codecs[MediaType(mediaType)] = c
	}
}

// SetDefault changes the media type used for bodies without a Content-Type.
func (r *Registry) SetDefault(mediaType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultType = MediaType(mediaType)
}

// Lookup finds the codec for a Content-Type value. Structured suffixes such as
// "application/problem+json" fall back to the codec of the base format.
func (r *Registry) Lookup(contentType string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mt := MediaType(contentType)
	if mt == "" {
		mt = r.defaultType
	}
	if c, ok := r.codecs[mt]; ok {
		return c, nil
	}
	if i := strings.LastIndexByte(mt, '+'); i >= 0 {
		if c, ok := r.codecs["application/"+mt[i+1:]]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
}

// MediaTypes lists the registered media types in sorted order.
func (r *Registry) MediaTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.codecs))
	for mt := range r.codecs {
		out = append(out, mt)
	}
	slices.Sort(out)
	return out
}
