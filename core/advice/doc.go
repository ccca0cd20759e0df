// Package advice discovers request and response body interceptors among the
// application's components.
//
// A component takes part when its instance implements RequestBodyAdvice,
// ResponseBodyAdvice or both. Discover orders the matches by priority and
// keeps one handle per component name:
//
//	reg := advice.NewRegistry(
//		advice.Component{Name: "audit", Priority: 10, Instance: auditAdvice{}},
//		advice.Component{Name: "trim", Priority: 0, Instance: advice.RequestFuncs{Before: trim}},
//	)
//	handles := advice.Lookup(reg, advice.WithLogger(log))
//
// Lookup caches the result per source for the life of the process, so the
// handles are computed once no matter how many resolvers share the source.
// A nil source produces no handles.
package advice
