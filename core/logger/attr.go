package logger

import "log/slog"

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Warn("msg", logger.Error(err)) without explicit nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Request Binding
// ============================================================================

// Field creates an attribute for the intermediate object field being bound.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Source creates an attribute for the request source a value came from
// (header, path, query, body).
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// SourceKey creates an attribute for the header, path variable or query
// parameter name looked up in the request.
func SourceKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("source_key", key)
}

// Code creates an attribute for a machine-readable diagnostic code.
func Code(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("code", code)
}

// TypeID creates an attribute for a registered type identifier.
func TypeID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("type_id", id)
}

// ============================================================================
// Network and HTTP
// ============================================================================

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// ContentType creates an attribute for a request or response media type.
func ContentType(ct string) slog.Attr {
	if ct == "" {
		return slog.Attr{}
	}
	return slog.String("content_type", ct)
}

// BytesIn creates an attribute for incoming bytes.
func BytesIn(n int64) slog.Attr {
	return slog.Int64("bytes_in", n)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Priority creates an attribute for ordering priorities.
func Priority(p int) slog.Attr {
	return slog.Int("priority", p)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
