package binder

import (
	"net/http"
	"net/textproto"
	"strings"
	"unicode"
)

// HeaderName derives a header name from a field identifier by inserting a
// hyphen before every internal upper-case letter and lower-casing the result:
//
//	xTestHeaderName -> x-test-header-name
//	XTestHeaderName -> x-test-header-name
//	TraceID         -> trace-i-d
//
// Initialisms are split letter by letter; declare an explicit Key for them.
// The function is idempotent on its own output.
func HeaderName(field string) string {
	var b strings.Builder
	b.Grow(len(field) + 4)
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lookupHeader finds a header case-insensitively. Canonical keys hit the map
// directly; hand-built maps with non-canonical keys fall back to a scan.
func lookupHeader(h http.Header, name string) ([]string, bool) {
	if h == nil {
		return nil, false
	}
	if values, ok := h[textproto.CanonicalMIMEHeaderKey(name)]; ok && len(values) > 0 {
		return values, true
	}
	for key, values := range h {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return values, true
		}
	}
	return nil, false
}
