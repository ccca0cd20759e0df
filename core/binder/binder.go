package binder

import "net/http"

// Binder populates an intermediate object from the non-body parts of a request.
// *Table implements it.
type Binder[T any] interface {
	Bind(dst *T, src Source) (Diagnostics, error)
}

// Source carries the request parts consumed by the extractors.
// The host router has already matched the route and extracted Path.
type Source struct {
	Header   http.Header
	Path     map[string]string
	RawQuery string
}

// Kind identifies the request source a binding reads from.
type Kind uint8

const (
	KindHeader Kind = iota + 1
	KindPath
	KindQuery
)

// String returns the lower-case source name.
func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindPath:
		return "path"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}
