// Package middleware provides net/http middleware that complements DTO
// resolution. Every constructor returns func(http.Handler) http.Handler, so
// the middleware plugs into chi or any router built on net/http.
//
// # Request ID
//
// RequestID assigns an identifier to each request, stores it in the request
// context and echoes it in the response header. requestdto.Context.RequestID
// picks it up for logging.
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true}))
//
// # Body Limit
//
// BodyLimit rejects requests whose Content-Length exceeds the limit with a
// 413 JSON error and caps the bytes read from every other body. Reading past
// the limit fails with codec.ErrBodyTooLarge, which the resolver reports as an
// oversized body.
//
//	r.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
//		MaxSize:          1 * middleware.MB,
//		ContentTypeLimit: map[string]int64{"application/yaml": 64 * middleware.KB},
//	}))
package middleware
