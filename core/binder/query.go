package binder

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseQuery decodes a raw query string into single values. The first value
// wins for repeated keys. Malformed pairs are skipped and reported through an
// ErrFailedToParseQuery error alongside the values that did parse.
func ParseQuery(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(raw)

	params := make(map[string]string, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			params[key] = vs[0]
		}
	}

	if err != nil {
		return params, fmt.Errorf("%w: %w", ErrFailedToParseQuery, err)
	}
	return params, nil
}

// QueryParams populates the query-bound fields of dst.
//
// An absent or blank required parameter leaves the field as is and is
// diagnosed; an absent optional parameter resets the field to its zero value.
// A present value that fails conversion returns ErrConversion. Panicking
// setters are diagnosed.
func (t *Table[T]) QueryParams(dst *T, params map[string]string, d *Diagnostics) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrNotSettable)
	}
	if t == nil {
		return nil
	}

	for _, b := range t.queries {
		raw, ok := params[b.key]
		if !ok || strings.TrimSpace(raw) == "" {
			if b.required {
				d.add(CodeQueryMissing, KindQuery, b.field, b.key, "required query parameter missing", nil)
				continue
			}
			if err := apply(dst, b.clear); err != nil {
				d.add(CodeQueryAssign, KindQuery, b.field, b.key, "query parameter not assignable", err)
			}
			continue
		}

		assign, err := b.convert(t.clean([]string{raw}))
		if err != nil {
			return fmt.Errorf("%w: query parameter %q=%q for field %s: %w", ErrConversion, b.key, raw, b.field, err)
		}
		if err := apply(dst, assign); err != nil {
			d.add(CodeQueryAssign, KindQuery, b.field, b.key, "query parameter not assignable", err)
		}
	}
	return nil
}
