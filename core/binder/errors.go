package binder

import "errors"

// Error variables define the binding failures that abort resolution.
// Everything else is reported as a Diagnostic.
var (
	// ErrConversion indicates a present query parameter could not be converted
	// to the field's type.
	ErrConversion = errors.New("failed to convert request value")

	// ErrNotSettable indicates the destination cannot be written: a nil
	// destination, or a header setter that panicked.
	ErrNotSettable = errors.New("field is not settable")

	// ErrInvalidBinding indicates a malformed binding declaration, such as an
	// empty field name, a nil setter or an option the binding kind does not accept.
	ErrInvalidBinding = errors.New("invalid binding declaration")

	// ErrDuplicateBinding indicates a field declared with more than one binding.
	ErrDuplicateBinding = errors.New("field has more than one binding")

	// ErrFailedToParseQuery indicates the raw query string contained malformed pairs.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
)
