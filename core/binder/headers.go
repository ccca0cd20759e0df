package binder

import (
	"fmt"
	"net/http"
)

// Headers populates the header-bound fields of dst. Header names are matched
// case-insensitively. Missing headers and values that fail coercion leave the
// field untouched and are reported as diagnostics. A nil dst or a panicking
// setter returns ErrNotSettable.
func (t *Table[T]) Headers(dst *T, headers http.Header, d *Diagnostics) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrNotSettable)
	}
	if t == nil {
		return nil
	}

	for _, b := range t.headers {
		values, ok := lookupHeader(headers, b.key)
		if !ok {
			d.add(CodeHeaderMissing, KindHeader, b.field, b.key, "header not found", nil)
			continue
		}

		assign, err := b.convert(t.clean(values))
		if err != nil {
			d.add(CodeHeaderConvert, KindHeader, b.field, b.key, "header value not convertible", err)
			continue
		}
		if err := apply(dst, assign); err != nil {
			return fmt.Errorf("%w: header %q into field %s: %w", ErrNotSettable, b.key, b.field, err)
		}
	}
	return nil
}
