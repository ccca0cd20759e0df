package binder

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Converter turns a raw request string into a typed value.
type Converter[V any] interface {
	Convert(raw string) (V, error)
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc[V any] func(raw string) (V, error)

// Convert calls f(raw).
func (f ConverterFunc[V]) Convert(raw string) (V, error) { return f(raw) }

// Enum is implemented by enumerated types that restrict the accepted raw values.
// Coerce rejects any input not listed by EnumValues.
type Enum interface {
	EnumValues() []string
}

// Coerce returns the generic coercion service for V. It supports strings,
// comma-separated string lists, booleans, every sized integer and float,
// time.Duration, types implementing encoding.TextUnmarshaler (uuid.UUID,
// time.Time, ...) and named types whose underlying kind is one of the scalars.
func Coerce[V any]() Converter[V] {
	return ConverterFunc[V](coerce[V])
}

func coerce[V any](raw string) (V, error) {
	var v V
	e, isEnum := enumOf(&v)
	if isEnum {
		// Enum members are matched and stored trimmed.
		raw = strings.TrimSpace(raw)
	}
	if err := CoerceInto(&v, raw); err != nil {
		var zero V
		return zero, err
	}
	if isEnum {
		allowed := e.EnumValues()
		if !slices.Contains(allowed, raw) {
			var zero V
			return zero, fmt.Errorf("invalid %T value %q, expected one of %s", v, raw, strings.Join(allowed, ", "))
		}
	}
	return v, nil
}

// enumOf reports whether V implements Enum with a value or pointer receiver.
func enumOf[V any](ptr *V) (Enum, bool) {
	if e, ok := any(*ptr).(Enum); ok {
		return e, true
	}
	e, ok := any(ptr).(Enum)
	return e, ok
}

// CoerceInto converts raw into the value ptr points to, using the same rules
// as Coerce. Body codecs use it to fill fields located by reflection.
func CoerceInto(ptr any, raw string) error {
	s := strings.TrimSpace(raw)

	switch p := ptr.(type) {
	case *string:
		*p = raw
	case *[]string:
		*p = splitList(raw)
	case *bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		*p = b
	case *int:
		return setInt(p, s, strconv.IntSize)
	case *int8:
		return setInt(p, s, 8)
	case *int16:
		return setInt(p, s, 16)
	case *int32:
		return setInt(p, s, 32)
	case *int64:
		return setInt(p, s, 64)
	case *uint:
		return setUint(p, s, strconv.IntSize)
	case *uint8:
		return setUint(p, s, 8)
	case *uint16:
		return setUint(p, s, 16)
	case *uint32:
		return setUint(p, s, 32)
	case *uint64:
		return setUint(p, s, 64)
	case *float32:
		f, err := cast.ToFloat32E(s)
		if err != nil {
			return fmt.Errorf("invalid float value %q", raw)
		}
		*p = f
	case *float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return fmt.Errorf("invalid float value %q", raw)
		}
		*p = f
	case *time.Duration:
		if s == "" {
			return fmt.Errorf("invalid duration value %q", raw)
		}
		d, err := cast.ToDurationE(s)
		if err != nil {
			return fmt.Errorf("invalid duration value %q", raw)
		}
		*p = d
	case encoding.TextUnmarshaler:
		if err := p.UnmarshalText([]byte(s)); err != nil {
			return fmt.Errorf("invalid %T value %q: %w", p, raw, err)
		}
	default:
		return coerceKind(reflect.ValueOf(ptr).Elem(), raw)
	}
	return nil
}

// coerceKind handles named types by their underlying kind.
func coerceKind(rv reflect.Value, raw string) error {
	s := strings.TrimSpace(raw)

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := parseInt(s, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := parseUint(s, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return fmt.Errorf("invalid float value %q", raw)
		}
		rv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported type %s", rv.Type())
	}
	return nil
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func setInt[N signed](p *N, s string, bits int) error {
	n, err := parseInt(s, bits)
	if err != nil {
		return err
	}
	*p = N(n)
	return nil
}

func setUint[N unsigned](p *N, s string, bits int) error {
	n, err := parseUint(s, bits)
	if err != nil {
		return err
	}
	*p = N(n)
	return nil
}

// parseInt reads decimal integers directly; cast handles the remaining
// spellings such as "0x1f" or "12.0".
func parseInt(s string, bits int) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, bits); err == nil {
		return n, nil
	}
	n, err := cast.ToInt64E(s)
	if err != nil || s == "" {
		return 0, fmt.Errorf("invalid int value %q", s)
	}
	if bits < 64 {
		lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
		if n < lo || n > hi {
			return 0, fmt.Errorf("int value %q overflows int%d", s, bits)
		}
	}
	return n, nil
}

func parseUint(s string, bits int) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, bits); err == nil {
		return n, nil
	}
	n, err := cast.ToUint64E(s)
	if err != nil || s == "" {
		return 0, fmt.Errorf("invalid uint value %q", s)
	}
	if bits < 64 && n > uint64(1)<<bits-1 {
		return 0, fmt.Errorf("uint value %q overflows uint%d", s, bits)
	}
	return n, nil
}

// parseBool accepts strconv.ParseBool values plus common form spellings.
func parseBool(s string) (bool, error) {
	if b, err := cast.ToBoolE(s); err == nil && s != "" {
		return b, nil
	}
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", s)
	}
}

// splitList splits a comma-separated value and trims each element.
// Empty elements are dropped.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
