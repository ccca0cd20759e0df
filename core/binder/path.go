package binder

import "fmt"

// PathVariables populates the path-bound fields of dst from the variables
// matched by the router. The extractor is lenient: missing variables,
// conversion failures and panicking setters are all diagnosed and skipped.
func (t *Table[T]) PathVariables(dst *T, vars map[string]string, d *Diagnostics) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrNotSettable)
	}
	if t == nil {
		return nil
	}

	for _, b := range t.paths {
		raw, ok := vars[b.key]
		if !ok {
			d.add(CodePathMissing, KindPath, b.field, b.key, "path variable not found", nil)
			continue
		}

		assign, err := b.convert(t.clean([]string{raw}))
		if err != nil {
			d.add(CodePathConvert, KindPath, b.field, b.key, "path variable not convertible", err)
			continue
		}
		if err := apply(dst, assign); err != nil {
			d.add(CodePathAssign, KindPath, b.field, b.key, "path variable not assignable", err)
		}
	}
	return nil
}
