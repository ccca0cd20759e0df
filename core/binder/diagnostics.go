package binder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/requestdto/core/logger"
)

// Diagnostic codes reported by the extractors. None of them aborts resolution.
const (
	CodeHeaderMissing = "header.missing"
	CodeHeaderConvert = "header.convert"
	CodePathMissing   = "path.missing"
	CodePathConvert   = "path.convert"
	CodePathAssign    = "path.assign"
	CodeQueryMissing  = "query.missing"
	CodeQueryAssign   = "query.assign"
	CodeQueryParse    = "query.parse"
)

// Diagnostic is a non-fatal extraction warning.
type Diagnostic struct {
	Code    string
	Kind    Kind
	Field   string
	Key     string
	Message string
	Err     error
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s (field %s, key %q): %v", d.Code, d.Message, d.Field, d.Key, d.Err)
	}
	return fmt.Sprintf("%s: %s (field %s, key %q)", d.Code, d.Message, d.Field, d.Key)
}

// Diagnostics collects warnings in the order they were raised.
type Diagnostics []Diagnostic

func (d *Diagnostics) add(code string, kind Kind, field, key, msg string, err error) {
	if d == nil {
		return
	}
	*d = append(*d, Diagnostic{Code: code, Kind: kind, Field: field, Key: key, Message: msg, Err: err})
}

// Has reports whether any diagnostic carries the given code.
func (d Diagnostics) Has(code string) bool {
	for _, diag := range d {
		if diag.Code == code {
			return true
		}
	}
	return false
}

// ForField returns the diagnostics raised for a field.
func (d Diagnostics) ForField(field string) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Field == field {
			out = append(out, diag)
		}
	}
	return out
}

// Log writes each diagnostic to log at WARN level.
func (d Diagnostics) Log(ctx context.Context, log *slog.Logger) {
	if log == nil {
		return
	}
	for _, diag := range d {
		attrs := []slog.Attr{
			logger.Code(diag.Code),
			logger.Source(diag.Kind.String()),
			logger.Field(diag.Field),
			logger.SourceKey(diag.Key),
		}
		if diag.Err != nil {
			attrs = append(attrs, logger.Error(diag.Err))
		}
		log.LogAttrs(ctx, slog.LevelWarn, diag.Message, attrs...)
	}
}
