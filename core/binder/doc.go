// Package binder populates an intermediate request object from headers, path
// variables and query parameters using explicit binding tables.
//
// A table lists, per field, the request source, the source key and a typed
// setter. Tables are built once at registration time; extraction never uses
// reflection to find or assign fields.
//
//	type createOrder struct {
//		Tenant  string
//		ID      int64
//		Expand  []string
//		Limit   int
//	}
//
//	var orderBindings = binder.MustTable(
//		binder.Header("XTenant", func(o *createOrder, v string) { o.Tenant = v }),
//		binder.PathVariable("id", func(o *createOrder, v int64) { o.ID = v }),
//		binder.Header("Expand", func(o *createOrder, v []string) { o.Expand = v }),
//		binder.QueryParam("limit", func(o *createOrder, v int) { o.Limit = v }, binder.Optional()),
//	)
//
//	diags, err := orderBindings.Bind(&order, binder.Source{
//		Header:   r.Header,
//		Path:     map[string]string{"id": chi.URLParam(r, "id")},
//		RawQuery: r.URL.RawQuery,
//	})
//
// # Leniency
//
// The three extractors deliberately differ in how they treat bad input:
//
//   - Headers: a missing header or an unconvertible value is diagnosed and the
//     field is left untouched. A panicking setter returns ErrNotSettable.
//   - Path variables: missing, unconvertible and unassignable values are all
//     diagnosed and skipped.
//   - Query parameters: a missing required parameter is diagnosed, a missing
//     optional one resets the field to its zero value, and a present value that
//     fails conversion returns ErrConversion.
//
// Diagnostics are returned to the caller, which usually logs them with
// Diagnostics.Log.
//
// # Header names
//
// Without an explicit Key, a header binding derives its name from the field
// identifier with HeaderName: "XTestHeaderName" is looked up as
// "x-test-header-name". Lookup is case-insensitive.
//
// # Coercion
//
// Coerce provides the generic conversion from strings to booleans, sized
// integers and floats, time.Duration, []string (comma separated),
// encoding.TextUnmarshaler implementations such as uuid.UUID, and named
// scalar types. Types implementing Enum are checked against their allowed
// values. Query parameters may replace it with WithConverter.
package binder
