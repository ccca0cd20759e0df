package requestdto_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/requestdto"
	"github.com/dmitrymomot/requestdto/core/advice"
	"github.com/dmitrymomot/requestdto/core/binder"
	"github.com/dmitrymomot/requestdto/core/dto"
	"github.com/dmitrymomot/requestdto/middleware"
)

type personInput struct {
	Name    string `json:"name" validate:"required"`
	TraceID string `json:"-"`
	ID      int64  `json:"-"`
	Active  bool   `json:"-"`
}

type tagInput struct {
	Tag string `json:"tag"`
}

type Person struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TraceID string `json:"trace_id"`
	Active  bool   `json:"active"`
}

const (
	personInputID dto.TypeID      = "person.input"
	tagInputID    dto.TypeID      = "tag.input"
	personID      dto.TypeID      = "person"
	personBuilder dto.ComponentID = "person.builder"
)

var personDecl = dto.Declaration{Input: personInputID, Builder: personBuilder}

func newPersonRegistry(t *testing.T, activeOpts ...binder.Option) *dto.Registry {
	t.Helper()
	reg := dto.NewRegistry()

	table := binder.MustTable(
		binder.Header("traceId", func(in *personInput, v string) { in.TraceID = v }, binder.Key("X-Trace-Id")),
		binder.PathVariable("id", func(in *personInput, v int64) { in.ID = v }),
		binder.QueryParam("active", func(in *personInput, v bool) { in.Active = v }, activeOpts...),
	)
	require.NoError(t, dto.RegisterInput(reg, personInputID, table))
	require.NoError(t, dto.RegisterInput(reg, tagInputID, binder.MustTable[tagInput]()))
	require.NoError(t, dto.RegisterType[Person](reg, personID))
	require.NoError(t, reg.RegisterBuilder(personBuilder, dto.NewBuilder(personInputID, personID,
		func(_ context.Context, in *personInput) (Person, error) {
			return Person{ID: in.ID, Name: in.Name, TraceID: in.TraceID, Active: in.Active}, nil
		})))
	return reg
}

func createPerson(ctx *requestdto.Context, p Person) requestdto.Response {
	return requestdto.JSONWithStatus(p, http.StatusCreated)
}

func newRouter(a *requestdto.Adapter, h requestdto.HandlerFunc[Person]) chi.Router {
	r := chi.NewRouter()
	r.Post("/people/{id}", requestdto.Handle(a, "createPerson", personDecl, h))
	return r
}

func personRequest(query, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/people/7?"+query, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Trace-Id", "42")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) requestdto.Error {
	t.Helper()
	var e requestdto.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestHandle_ResolvesFromEverySource(t *testing.T) {
	t.Parallel()

	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)))
	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, personRequest("active=true", `{"name":"Ann"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var got Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, Person{ID: 7, Name: "Ann", TraceID: "42", Active: true}, got)
}

func TestHandle_ConversionFailureRejectsRequest(t *testing.T) {
	t.Parallel()

	called := false
	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)))
	w := httptest.NewRecorder()
	newRouter(a, func(ctx *requestdto.Context, p Person) requestdto.Response {
		called = true
		return createPerson(ctx, p)
	}).ServeHTTP(w, personRequest("active=maybe", `{"name":"Ann"}`))

	assert.False(t, called)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, "BAD_REQUEST", e.Code)
	assert.Contains(t, e.Message, `"active"="maybe"`)
}

func TestHandle_MismatchedDeclarationFailsAtMount(t *testing.T) {
	t.Parallel()

	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)))
	decl := dto.Declaration{Input: tagInputID, Builder: personBuilder}

	defer func() {
		rec := recover()
		require.NotNil(t, rec, "Handle must panic on a broken declaration")
		err, ok := rec.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, dto.ErrBuilderInputType)
		assert.Contains(t, err.Error(), "handler broken")
	}()
	requestdto.Handle(a, "broken", decl, createPerson)
}

func TestResolve_MismatchedDeclarationNeverReadsBody(t *testing.T) {
	t.Parallel()

	res := dto.NewResolver(newPersonRegistry(t))
	src := &countingReader{r: strings.NewReader(`{"name":"Ann"}`)}
	req := httptest.NewRequest(http.MethodPost, "/people/7?active=true", src)
	req.Header.Set("Content-Type", "application/json")
	ctx := requestdto.NewContext(httptest.NewRecorder(), req, requestdto.WithParams(map[string]string{"id": "7"}))

	decl := dto.Declaration{Input: tagInputID, Builder: personBuilder}
	_, err := res.Resolve(ctx, dto.Param{Name: "p", DTO: &decl}, ctx)

	require.ErrorIs(t, err, dto.ErrBuilderInputType)
	assert.Equal(t, dto.KindConfiguration, dto.KindOf(err))
	assert.Zero(t, src.read)
}

func TestHandle_MissingRequiredQueryIsDiagnosed(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t), dto.WithLogger(log)))

	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, personRequest("", `{"name":"Ann"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	var got Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Active)
	assert.Contains(t, logs.String(), binder.CodeQueryMissing)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
}

func TestHandle_ErrorResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []requestdto.Option
		ctype  string
		body   string
		status int
		code   string
	}{
		{"validation", nil, "application/json", `{"name":""}`, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"unknown field", nil, "application/json", `{"name":"Ann","age":3}`, http.StatusBadRequest, "BAD_REQUEST"},
		{"malformed json", nil, "application/json", `{"name":`, http.StatusBadRequest, "BAD_REQUEST"},
		{"media type", nil, "text/csv", `name\nAnn`, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"too large", []requestdto.Option{requestdto.WithMaxBodySize(8)}, "application/json", `{"name":"Annabelle"}`, http.StatusRequestEntityTooLarge, "REQUEST_ENTITY_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)), tt.opts...)
			req := personRequest("active=true", tt.body)
			req.Header.Set("Content-Type", tt.ctype)

			w := httptest.NewRecorder()
			newRouter(a, createPerson).ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestHandle_ValidationDetails(t *testing.T) {
	t.Parallel()

	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)))
	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, personRequest("active=true", `{}`))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var payload struct {
		Details struct {
			Errors []struct {
				Field string `json:"field"`
			} `json:"errors"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Details.Errors, 1)
	assert.Equal(t, "Name", payload.Details.Errors[0].Field)
}

func TestHandle_FormBody(t *testing.T) {
	t.Parallel()

	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)))
	req := personRequest("active=false", "name=Bob")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Bob", got.Name)
	assert.False(t, got.Active)
}

func TestHandle_BodyAdvice(t *testing.T) {
	t.Parallel()

	components := advice.NewRegistry(
		advice.Component{
			Name: "upper",
			Instance: advice.RequestFuncs{
				Before: func(_ context.Context, _ string, body []byte) ([]byte, error) {
					return bytes.ReplaceAll(body, []byte("ann"), []byte("Ann")), nil
				},
			},
		},
		advice.Component{
			Name: "envelope",
			Instance: advice.ResponseFunc(func(_ context.Context, _ string, body []byte) ([]byte, error) {
				return append(append([]byte(`{"data":`), body...), '}'), nil
			}),
		},
	)

	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t), dto.WithAdvice(components)))
	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, personRequest("active=true", `{"name":"ann"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	var got struct {
		Data Person `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ann", got.Data.Name)
}

func TestHandle_RequestAdviceFailure(t *testing.T) {
	t.Parallel()

	components := advice.NewRegistry(advice.Component{
		Name: "signature",
		Instance: advice.RequestFuncs{
			Before: func(context.Context, string, []byte) ([]byte, error) {
				return nil, errors.New("bad signature")
			},
		},
	})

	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t), dto.WithAdvice(components)))
	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, personRequest("active=true", `{"name":"Ann"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandle_NilResponse(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	a := requestdto.NewAdapter(
		dto.NewResolver(newPersonRegistry(t)),
		requestdto.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)
	w := httptest.NewRecorder()
	newRouter(a, func(*requestdto.Context, Person) requestdto.Response { return nil }).
		ServeHTTP(w, personRequest("active=true", `{"name":"Ann"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), "createPerson")
	assert.Contains(t, logs.String(), `"status_code":500`)
	assert.Contains(t, logs.String(), `"request":{`)
	assert.Contains(t, logs.String(), `"method":"POST"`)
	assert.Contains(t, logs.String(), `"content_type":"application/json"`)
}

func TestHandle_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	a := requestdto.NewAdapter(
		dto.NewResolver(newPersonRegistry(t)),
		requestdto.WithErrorHandler(func(ctx *requestdto.Context, err error) {
			got = err
			_ = requestdto.Status(http.StatusTeapot).Render(ctx.ResponseWriter(), ctx.Request())
		}),
	)
	w := httptest.NewRecorder()
	newRouter(a, createPerson).ServeHTTP(w, personRequest("active=maybe", `{"name":"Ann"}`))

	require.Error(t, got)
	assert.ErrorIs(t, got, binder.ErrConversion)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandle_CustomParams(t *testing.T) {
	t.Parallel()

	a := requestdto.NewAdapter(
		dto.NewResolver(newPersonRegistry(t)),
		requestdto.WithParamsFunc(func(r *http.Request) map[string]string {
			return map[string]string{"id": r.PathValue("id")}
		}),
	)
	mux := http.NewServeMux()
	mux.Handle("POST /people/{id}", requestdto.Handle(a, "createPerson", personDecl, createPerson))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, personRequest("active=true", `{"name":"Ann"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	var got Person
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.ID)
}

func TestHandle_RequestIDMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	a := requestdto.NewAdapter(dto.NewResolver(newPersonRegistry(t)))
	r := chi.NewRouter()
	r.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return "req-1" },
	}))
	r.Post("/people/{id}", requestdto.Handle(a, "createPerson", personDecl,
		func(ctx *requestdto.Context, p Person) requestdto.Response {
			seen = ctx.RequestID()
			return requestdto.NoContent()
		}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, personRequest("active=true", `{"name":"Ann"}`))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}
