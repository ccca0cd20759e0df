// Package requestdto resolves handler arguments from HTTP requests. A handler
// declares the DTO it wants through a dto.Declaration: the intermediate input
// type, the builder that converts it, and an optional validator. The adapter
// decodes the body, binds headers, path variables and query parameters from a
// per-type binding table, validates the intermediate object, builds the DTO and
// passes it to the handler.
//
// # Packages
//
//   - core/binder: typed binding tables for headers, path variables and query parameters
//   - core/codec: body codecs (JSON, YAML, XML, URL-encoded forms) and the codec registry
//   - core/advice: request and response body advice discovered from a component source
//   - core/dto: the type registry, builders, validators and the Resolver
//   - core/validator: tag and rule based validation of intermediate objects
//   - core/config: environment configuration loading
//   - core/logger: slog attribute helpers
//   - middleware: request ID and body limit middleware
//
// # Usage
//
//	reg := dto.NewRegistry()
//	table := binder.MustTable(
//		binder.Header("traceId", func(in *personInput, v string) { in.TraceID = v }, binder.Key("X-Trace-Id")),
//		binder.PathVariable("id", func(in *personInput, v int64) { in.ID = v }),
//		binder.QueryParam("active", func(in *personInput, v bool) { in.Active = v }),
//	)
//	_ = dto.RegisterInput(reg, "person.input", table)
//	_ = dto.RegisterType[Person](reg, "person")
//	_ = reg.RegisterBuilder("person.builder", dto.NewBuilder("person.input", "person",
//		func(ctx context.Context, in *personInput) (Person, error) {
//			return Person{ID: in.ID, Name: in.Name}, nil
//		}))
//
//	adapter := requestdto.NewAdapter(dto.NewResolver(reg))
//	decl := dto.Declaration{Input: "person.input", Builder: "person.builder"}
//
//	r := chi.NewRouter()
//	r.Post("/people/{id}", requestdto.Handle(adapter, "createPerson", decl,
//		func(ctx *requestdto.Context, p Person) requestdto.Response {
//			return requestdto.JSONWithStatus(p, http.StatusCreated)
//		}))
//
// Handle checks the declaration when it is called, so a route whose builder,
// input type or validator do not line up panics at startup instead of failing
// per request.
//
// # Errors
//
// Resolution errors are classified by dto.KindOf and mapped to responses by
// ErrorFrom: malformed requests answer 400 (413 for oversized bodies),
// unsupported content types 415, validation failures 422 with every violation
// listed, everything else 500. Replace the JSON error writer with
// WithErrorHandler.
package requestdto
