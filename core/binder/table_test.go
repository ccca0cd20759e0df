package binder_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/requestdto/core/binder"
)

type request struct {
	Tenant   string
	Tags     []string
	Retries  int
	ID       int64
	Slug     string
	Page     int
	Limit    int
	Sort     string
	Internal string
}

func requestTable(t *testing.T, extra ...binder.Binding[request]) *binder.Table[request] {
	t.Helper()
	bindings := append([]binder.Binding[request]{
		binder.Header("XTenant", func(r *request, v string) { r.Tenant = v }),
		binder.Header("Tags", func(r *request, v []string) { r.Tags = v }, binder.Key("x-tag")),
		binder.Header("XRetries", func(r *request, v int) { r.Retries = v }),
		binder.PathVariable("id", func(r *request, v int64) { r.ID = v }),
		binder.PathVariable("Slug", func(r *request, v string) { r.Slug = v }, binder.Key("slug")),
		binder.QueryParam("page", func(r *request, v int) { r.Page = v }),
		binder.QueryParam("limit", func(r *request, v int) { r.Limit = v }, binder.Optional()),
	}, extra...)
	table, err := binder.NewTable(bindings...)
	require.NoError(t, err)
	return table
}

func TestTable_Headers(t *testing.T) {
	t.Parallel()

	t.Run("case insensitive with derived names", func(t *testing.T) {
		t.Parallel()
		h := http.Header{}
		h.Set("X-Tenant", "acme")
		h.Add("X-Tag", "a")
		h.Add("X-Tag", "b")
		h.Set("X-Retries", "3")

		var dst request
		var d binder.Diagnostics
		require.NoError(t, requestTable(t).Headers(&dst, h, &d))
		assert.Equal(t, "acme", dst.Tenant)
		assert.Equal(t, []string{"a", "b"}, dst.Tags)
		assert.Equal(t, 3, dst.Retries)
		assert.Empty(t, d)
	})

	t.Run("non canonical map keys", func(t *testing.T) {
		t.Parallel()
		h := http.Header{"x-tenant": {"acme"}}

		var dst request
		require.NoError(t, requestTable(t).Headers(&dst, h, nil))
		assert.Equal(t, "acme", dst.Tenant)
	})

	t.Run("missing and unconvertible are diagnosed", func(t *testing.T) {
		t.Parallel()
		h := http.Header{}
		h.Set("X-Retries", "many")

		dst := request{Tenant: "keep", Retries: 7}
		var d binder.Diagnostics
		require.NoError(t, requestTable(t).Headers(&dst, h, &d))
		assert.Equal(t, "keep", dst.Tenant)
		assert.Equal(t, 7, dst.Retries)
		assert.True(t, d.Has(binder.CodeHeaderMissing))
		assert.True(t, d.Has(binder.CodeHeaderConvert))
		require.Len(t, d.ForField("XRetries"), 1)
		assert.Equal(t, "x-retries", d.ForField("XRetries")[0].Key)
	})

	t.Run("panicking setter is fatal", func(t *testing.T) {
		t.Parallel()
		table := binder.MustTable(
			binder.Header("XTenant", func(*request, string) { panic("boom") }),
		)
		h := http.Header{}
		h.Set("X-Tenant", "acme")

		err := table.Headers(&request{}, h, nil)
		assert.ErrorIs(t, err, binder.ErrNotSettable)
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()
		err := requestTable(t).Headers(nil, http.Header{}, nil)
		assert.ErrorIs(t, err, binder.ErrNotSettable)
	})
}

func TestTable_PathVariables(t *testing.T) {
	t.Parallel()

	t.Run("assigns converted values", func(t *testing.T) {
		t.Parallel()
		var dst request
		var d binder.Diagnostics
		err := requestTable(t).PathVariables(&dst, map[string]string{"id": "42", "slug": "hello"}, &d)
		require.NoError(t, err)
		assert.Equal(t, int64(42), dst.ID)
		assert.Equal(t, "hello", dst.Slug)
		assert.Empty(t, d)
	})

	t.Run("lenient on bad input", func(t *testing.T) {
		t.Parallel()
		dst := request{ID: 1}
		var d binder.Diagnostics
		err := requestTable(t).PathVariables(&dst, map[string]string{"id": "abc"}, &d)
		require.NoError(t, err)
		assert.Equal(t, int64(1), dst.ID)
		assert.True(t, d.Has(binder.CodePathConvert))
		assert.True(t, d.Has(binder.CodePathMissing))
	})

	t.Run("panicking setter is diagnosed", func(t *testing.T) {
		t.Parallel()
		table := binder.MustTable(
			binder.PathVariable("id", func(*request, int64) { panic("boom") }),
		)
		var d binder.Diagnostics
		err := table.PathVariables(&request{}, map[string]string{"id": "5"}, &d)
		require.NoError(t, err)
		assert.True(t, d.Has(binder.CodePathAssign))
	})
}

func TestTable_QueryParams(t *testing.T) {
	t.Parallel()

	t.Run("required present is converted", func(t *testing.T) {
		t.Parallel()
		var dst request
		var d binder.Diagnostics
		err := requestTable(t).QueryParams(&dst, map[string]string{"page": "2", "limit": "50"}, &d)
		require.NoError(t, err)
		assert.Equal(t, 2, dst.Page)
		assert.Equal(t, 50, dst.Limit)
		assert.Empty(t, d)
	})

	t.Run("required absent is left alone and diagnosed", func(t *testing.T) {
		t.Parallel()
		dst := request{Page: 9}
		var d binder.Diagnostics
		err := requestTable(t).QueryParams(&dst, map[string]string{}, &d)
		require.NoError(t, err)
		assert.Equal(t, 9, dst.Page)
		assert.True(t, d.Has(binder.CodeQueryMissing))
	})

	t.Run("required blank is diagnosed", func(t *testing.T) {
		t.Parallel()
		var d binder.Diagnostics
		err := requestTable(t).QueryParams(&request{}, map[string]string{"page": "  "}, &d)
		require.NoError(t, err)
		assert.True(t, d.Has(binder.CodeQueryMissing))
	})

	t.Run("optional absent resets to zero", func(t *testing.T) {
		t.Parallel()
		dst := request{Limit: 100}
		err := requestTable(t).QueryParams(&dst, map[string]string{"page": "1"}, nil)
		require.NoError(t, err)
		assert.Zero(t, dst.Limit)
	})

	t.Run("conversion failure is fatal", func(t *testing.T) {
		t.Parallel()
		err := requestTable(t).QueryParams(&request{}, map[string]string{"page": "two"}, nil)
		require.ErrorIs(t, err, binder.ErrConversion)
		assert.Contains(t, err.Error(), `"page"="two"`)
	})

	t.Run("custom converter", func(t *testing.T) {
		t.Parallel()
		upper := binder.ConverterFunc[string](func(raw string) (string, error) {
			return "sort:" + raw, nil
		})
		table := binder.MustTable(
			binder.QueryParam("sort", func(r *request, v string) { r.Sort = v }, binder.WithConverter(upper)),
		)
		var dst request
		require.NoError(t, table.QueryParams(&dst, map[string]string{"sort": "name"}, nil))
		assert.Equal(t, "sort:name", dst.Sort)
	})
}

func TestTable_Bind(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("X-Tenant", "acme")
	h.Set("X-Retries", "1")
	h.Set("X-Tag", "a")

	var dst request
	d, err := requestTable(t).Bind(&dst, binder.Source{
		Header:   h,
		Path:     map[string]string{"id": "7", "slug": "s"},
		RawQuery: "page=3&page=4&limit=10",
	})
	require.NoError(t, err)
	assert.Empty(t, d)
	assert.Equal(t, request{Tenant: "acme", Tags: []string{"a"}, Retries: 1, ID: 7, Slug: "s", Page: 3, Limit: 10}, dst)

	t.Run("malformed query is diagnosed", func(t *testing.T) {
		t.Parallel()
		var dst request
		d, err := requestTable(t).Bind(&dst, binder.Source{RawQuery: "page=1&bad=%zz"})
		require.NoError(t, err)
		assert.True(t, d.Has(binder.CodeQueryParse))
		assert.Equal(t, 1, dst.Page)
	})

	t.Run("sanitized table", func(t *testing.T) {
		t.Parallel()
		h := http.Header{"X-Tenant": {"ac\x00me"}}
		var dst request
		_, err := requestTable(t).Sanitized().Bind(&dst, binder.Source{Header: h, RawQuery: "page=1"})
		require.NoError(t, err)
		assert.Equal(t, "acme", dst.Tenant)
	})
}

func TestNewTable_Errors(t *testing.T) {
	t.Parallel()

	set := func(r *request, v string) { r.Internal = v }

	tests := []struct {
		name    string
		binding binder.Binding[request]
		want    error
	}{
		{"duplicate field", binder.QueryParam("page", set), binder.ErrDuplicateBinding},
		{"empty field", binder.QueryParam("", set), binder.ErrInvalidBinding},
		{"nil setter", binder.QueryParam[request, string]("internal", nil), binder.ErrInvalidBinding},
		{"optional header", binder.Header("Internal", set, binder.Optional()), binder.ErrInvalidBinding},
		{"converter on path", binder.PathVariable("internal", set, binder.WithConverter(binder.Coerce[string]())), binder.ErrInvalidBinding},
		{"converter type mismatch", binder.QueryParam("internal", set, binder.WithConverter(binder.Coerce[int]())), binder.ErrInvalidBinding},
		{"zero binding", binder.Binding[request]{}, binder.ErrInvalidBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bindings := append(requestTable(t).Bindings(), tt.binding)
			_, err := binder.NewTable(bindings...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Panics(t, func() {
		binder.MustTable(binder.QueryParam("", set))
	})
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	params, err := binder.ParseQuery("a=1&b=x%20y&a=2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x y"}, params)

	params, err = binder.ParseQuery("ok=1&bad=%zz")
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	assert.Equal(t, "1", params["ok"])
}
