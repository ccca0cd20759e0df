package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrymomot/requestdto/core/codec"
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// MaxSize is the maximum allowed size in bytes (default: 4MB)
	MaxSize int64

	// ContentTypeLimit allows setting different limits per content type
	// Example: {"application/json": 1MB, "application/yaml": 256KB}
	ContentTypeLimit map[string]int64

	// ErrorHandler responds to requests whose Content-Length exceeds the limit
	ErrorHandler func(w http.ResponseWriter, r *http.Request, contentLength, maxSize int64)

	// DisableContentLengthCheck skips the Content-Length header check
	// and only enforces the limit during body reading
	DisableContentLengthCheck bool
}

// BodyLimit creates a body limit middleware with default configuration (4MB limit).
func BodyLimit() func(http.Handler) http.Handler {
	return BodyLimitWithConfig(BodyLimitConfig{})
}

// BodyLimitWithSize creates a body limit middleware with a specified size limit.
func BodyLimitWithSize(maxSize int64) func(http.Handler) http.Handler {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom configuration.
// Requests announcing a larger Content-Length are rejected up front; other
// bodies fail with codec.ErrBodyTooLarge once the limit is crossed while reading.
func BodyLimitWithConfig(cfg BodyLimitConfig) func(http.Handler) http.Handler {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = tooLarge
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			if !cfg.DisableContentLengthCheck && r.ContentLength > maxSize {
				cfg.ErrorHandler(w, r, r.ContentLength, maxSize)
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				r.Body = &limitedReader{reader: r.Body, limit: maxSize}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tooLarge(w http.ResponseWriter, _ *http.Request, contentLength, maxSize int64) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code": "REQUEST_ENTITY_TOO_LARGE",
		"message": fmt.Sprintf("Request body too large. Size: %s, Maximum allowed: %s",
			formatBytes(contentLength), formatBytes(maxSize)),
		"details": map[string]any{"limit": maxSize, "size": contentLength},
	})
}

// limitedReader wraps an io.ReadCloser to enforce a size limit
type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read >= lr.limit {
		// Probe for one more byte to tell an exact-limit body from an oversized one.
		var probe [1]byte
		n, err := lr.reader.Read(probe[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: limit is %d bytes", codec.ErrBodyTooLarge, lr.limit)
		}
		return 0, err
	}

	if remaining := lr.limit - lr.read; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	return n, err
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}

// formatBytes formats bytes into a human-readable string
func formatBytes(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// Common size constants for convenience
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)
