// Package logger provides slog attribute helpers shared by the request
// resolution packages.
//
// Helpers return an empty slog.Attr for nil or empty input, so they can be
// passed to a logger unconditionally:
//
//	log.Warn("header is not present in request",
//		logger.Component("binder"),
//		logger.Field("TraceID"),
//		logger.SourceKey("x-trace-id"),
//		logger.Error(err), // dropped when err is nil
//	)
//
// NewNope returns a logger that discards everything and is the default for
// every component that accepts a *slog.Logger option.
package logger
