package binder

import (
	"errors"
	"fmt"
	"slices"
)

// Option configures a binding declaration.
type Option func(*options)

type options struct {
	key       string
	optional  bool
	converter any
}

// Key overrides the source key. Without it headers derive their name with
// HeaderName and path variables and query parameters use the field identifier.
func Key(name string) Option {
	return func(o *options) { o.key = name }
}

// Optional marks a query parameter as not required. An absent optional
// parameter resets the field to its zero value. Only valid for QueryParam.
func Optional() Option {
	return func(o *options) { o.optional = true }
}

// WithConverter replaces the generic coercion service for a query parameter.
// The converter must produce the binding's value type.
func WithConverter[V any](c Converter[V]) Option {
	return func(o *options) { o.converter = c }
}

// Binding declares how one field of T is populated from one request source.
// Create bindings with Header, PathVariable or QueryParam.
type Binding[T any] struct {
	field    string
	kind     Kind
	key      string
	required bool
	err      error

	convert func(values []string) (func(*T), error)
	clear   func(*T)
}

// Field returns the field identifier.
func (b Binding[T]) Field() string { return b.field }

// Kind returns the request source of the binding.
func (b Binding[T]) Kind() Kind { return b.kind }

// Key returns the effective source key.
func (b Binding[T]) Key() string { return b.key }

// Required reports whether an absent value is diagnosed. Always true for
// headers and path variables.
func (b Binding[T]) Required() bool { return b.required }

// Header binds the field to a request header. When V is []string the field
// receives every value of the header, otherwise the first value is coerced.
func Header[T, V any](field string, set func(*T, V), opts ...Option) Binding[T] {
	return newBinding(KindHeader, field, set, opts)
}

// PathVariable binds the field to a path variable extracted by the router.
func PathVariable[T, V any](field string, set func(*T, V), opts ...Option) Binding[T] {
	return newBinding(KindPath, field, set, opts)
}

// QueryParam binds the field to a query parameter. Query parameters are
// required unless declared Optional.
func QueryParam[T, V any](field string, set func(*T, V), opts ...Option) Binding[T] {
	return newBinding(KindQuery, field, set, opts)
}

func newBinding[T, V any](kind Kind, field string, set func(*T, V), opts []Option) Binding[T] {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	b := Binding[T]{field: field, kind: kind, key: o.key, required: !o.optional}
	if b.key == "" {
		b.key = field
		if kind == KindHeader {
			b.key = HeaderName(field)
		}
	}

	switch {
	case field == "":
		b.err = fmt.Errorf("%w: empty field identifier", ErrInvalidBinding)
		return b
	case set == nil:
		b.err = fmt.Errorf("%w: field %s has no setter", ErrInvalidBinding, field)
		return b
	case o.optional && kind != KindQuery:
		b.err = fmt.Errorf("%w: field %s: only query parameters can be optional", ErrInvalidBinding, field)
		return b
	case o.converter != nil && kind != KindQuery:
		b.err = fmt.Errorf("%w: field %s: custom converters apply to query parameters only", ErrInvalidBinding, field)
		return b
	}

	conv := Coerce[V]()
	if o.converter != nil {
		c, ok := o.converter.(Converter[V])
		if !ok {
			var zero V
			b.err = fmt.Errorf("%w: field %s: converter does not produce %T", ErrInvalidBinding, field, zero)
			return b
		}
		conv = c
	}

	var zero V
	_, multi := any(zero).([]string)
	multi = multi && kind == KindHeader

	b.convert = func(values []string) (func(*T), error) {
		var v V
		if multi {
			v = any(slices.Clone(values)).(V)
		} else {
			var err error
			if v, err = conv.Convert(values[0]); err != nil {
				return nil, err
			}
		}
		return func(dst *T) { set(dst, v) }, nil
	}
	b.clear = func(dst *T) { set(dst, zero) }

	return b
}

// Table is the binding table of an intermediate type T. It is built once
// at registration time and is safe for concurrent use.
type Table[T any] struct {
	headers []Binding[T]
	paths   []Binding[T]
	queries []Binding[T]

	sanitize func(string) string
}

// NewTable builds a table from bindings. Every field may carry at most one
// binding; malformed declarations are reported together.
func NewTable[T any](bindings ...Binding[T]) (*Table[T], error) {
	t := &Table[T]{}
	seen := make(map[string]Kind, len(bindings))

	var errs []error
	for _, b := range bindings {
		if b.err != nil {
			errs = append(errs, b.err)
			continue
		}
		if b.convert == nil {
			errs = append(errs, fmt.Errorf("%w: zero binding", ErrInvalidBinding))
			continue
		}
		if prev, dup := seen[b.field]; dup {
			errs = append(errs, fmt.Errorf("%w: field %s already bound to a %s", ErrDuplicateBinding, b.field, prev))
			continue
		}
		seen[b.field] = b.kind

		switch b.kind {
		case KindHeader:
			t.headers = append(t.headers, b)
		case KindPath:
			t.paths = append(t.paths, b)
		case KindQuery:
			t.queries = append(t.queries, b)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable[T any](bindings ...Binding[T]) *Table[T] {
	t, err := NewTable(bindings...)
	if err != nil {
		panic(err)
	}
	return t
}

// Sanitized returns a copy of the table that passes every raw value through
// SanitizeString before conversion.
func (t *Table[T]) Sanitized() *Table[T] {
	if t == nil {
		return &Table[T]{sanitize: SanitizeString}
	}
	c := *t
	c.sanitize = SanitizeString
	return &c
}

// Bindings returns all bindings grouped by source: headers, path variables, query parameters.
func (t *Table[T]) Bindings() []Binding[T] {
	if t == nil {
		return nil
	}
	out := make([]Binding[T], 0, len(t.headers)+len(t.paths)+len(t.queries))
	out = append(out, t.headers...)
	out = append(out, t.paths...)
	return append(out, t.queries...)
}

// Bind runs the header, path-variable and query-param extractors in that
// order against dst. Warnings accumulate in the returned Diagnostics; the
// first fatal error stops extraction.
func (t *Table[T]) Bind(dst *T, src Source) (Diagnostics, error) {
	var d Diagnostics
	if err := t.Headers(dst, src.Header, &d); err != nil {
		return d, err
	}
	if err := t.PathVariables(dst, src.Path, &d); err != nil {
		return d, err
	}

	params, err := ParseQuery(src.RawQuery)
	if err != nil {
		d.add(CodeQueryParse, KindQuery, "", "", "malformed query string", err)
	}
	if err := t.QueryParams(dst, params, &d); err != nil {
		return d, err
	}
	return d, nil
}

func (t *Table[T]) clean(values []string) []string {
	if t.sanitize == nil {
		return values
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = t.sanitize(v)
	}
	return out
}

// apply runs an assignment, converting a setter panic into an error.
func apply[T any](dst *T, assign func(*T)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setter panicked: %v", r)
		}
	}()
	assign(dst)
	return nil
}
