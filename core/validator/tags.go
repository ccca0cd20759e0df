package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidTarget is returned when ValidateStruct is not given a pointer to struct.
var ErrInvalidTarget = errors.New("validator: must pass a pointer to struct")

// ValidatorFunc builds a Rule for one field from the tag parameters.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"len":      lenValidator,
		"between":  betweenValidator,
		"email":    stringRule(ValidEmail),
		"url":      stringRule(ValidURL),
		"alphanum": stringRule(ValidAlphanumeric),
		"numeric":  stringRule(ValidNumericString),
		"uuid":     uuidValidator,
		"in":       inValidator,
		"not_in":   notInValidator,
		"regex":    regexValidator,
		"positive": positiveValidator,
		"nonzero":  nonZeroValidator,
	}
)

// RegisterValidator adds a custom validator function to the registry.
// Registering an existing name replaces it.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct based on its `validate` field tags.
// Rules are separated by semicolons, parameters by commas:
//
//	Name  string `validate:"required;min:2;max:50"`
//	State string `validate:"in:draft,published"`
//
// Every violation is collected; the returned error is ValidationErrors.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	var errs ValidationErrors
	validateStructRecursive(rv, "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := structField.Name
		if prefix != "" {
			fieldPath = prefix + "." + structField.Name
		}

		// Nested structs without their own rules are always descended into
		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, errs)
			continue
		}

		if field.Kind() == reflect.Pointer {
			switch {
			case field.IsNil():
				if tag != "" {
					validateField(fieldPath, field, tag, errs)
				}
			case field.Elem().Kind() == reflect.Struct && tag == "":
				validateStructRecursive(field.Elem(), fieldPath, errs)
			case tag != "":
				validateField(fieldPath, field.Elem(), tag, errs)
			}
			continue
		}

		if tag == "" {
			continue
		}

		validateField(fieldPath, field, tag, errs)
	}
}

func validateField(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for ruleStr := range strings.SplitSeq(tag, ";") {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(ruleStr, ":")
		name = strings.TrimSpace(name)

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[name]
		if !ok {
			continue
		}

		// Nil pointers only make sense for "required"; other rules skip them
		if field.Kind() == reflect.Pointer && field.IsNil() && name != "required" {
			continue
		}

		if rule := fn(fieldPath, field, params); rule.Check != nil && !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

// Built-in validators

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func stringRule(fn func(field, value string) Rule) ValidatorFunc {
	return func(field string, value reflect.Value, _ []string) Rule {
		if value.Kind() != reflect.String {
			return pass()
		}
		return fn(field, value.String())
	}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// numeric returns value as float64 when it is of a numeric kind.
func numeric(value reflect.Value) (float64, bool) {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(value.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(value.Uint()), true
	case reflect.Float32, reflect.Float64:
		return value.Float(), true
	default:
		return 0, false
	}
}

// size returns the comparable size of strings and collections.
func size(value reflect.Value) (int, string, bool) {
	switch value.Kind() {
	case reflect.String:
		return len([]rune(value.String())), "characters long", true
	case reflect.Slice, reflect.Array, reflect.Map:
		return value.Len(), "items", true
	default:
		return 0, "", false
	}
}

func boundRule(field string, value reflect.Value, param, key string, ok func(got, limit float64) bool, verb string) Rule {
	if n, isNum := numeric(value); isNum {
		limit, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return pass()
		}
		return Rule{
			Check: func() bool { return ok(n, limit) },
			Error: ValidationError{
				Field:             field,
				Message:           fmt.Sprintf("must be %s %s", verb, param),
				TranslationKey:    "validation." + key,
				TranslationValues: map[string]any{"field": field, key: limit},
			},
		}
	}

	if n, unit, isSized := size(value); isSized {
		limit, err := strconv.Atoi(param)
		if err != nil {
			return pass()
		}
		suffix := "_length"
		message := fmt.Sprintf("must be %s %d %s", verb, limit, unit)
		if unit == "items" {
			suffix = "_items"
			message = fmt.Sprintf("must have %s %d %s", verb, limit, unit)
		}
		return Rule{
			Check: func() bool { return ok(float64(n), float64(limit)) },
			Error: ValidationError{
				Field:             field,
				Message:           message,
				TranslationKey:    "validation." + key + suffix,
				TranslationValues: map[string]any{"field": field, key: limit},
			},
		}
	}

	return pass()
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	return boundRule(field, value, params[0], "min", func(got, limit float64) bool { return got >= limit }, "at least")
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	return boundRule(field, value, params[0], "max", func(got, limit float64) bool { return got <= limit }, "at most")
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	return boundRule(field, value, params[0], "len", func(got, limit float64) bool { return got == limit }, "exactly")
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return pass()
	}
	lo, hi := minValidator(field, value, params[:1]), maxValidator(field, value, params[1:2])
	return Rule{
		Check: func() bool { return lo.Check() && hi.Check() },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be between %s and %s", params[0], params[1]),
			TranslationKey:    "validation.between",
			TranslationValues: map[string]any{"field": field, "min": params[0], "max": params[1]},
		},
	}
}

func uuidValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}

	version := 0 // any version
	if len(params) > 0 {
		version, _ = strconv.Atoi(params[0])
	}

	if version > 0 {
		return ValidUUIDVersionString(field, value.String(), version)
	}
	return ValidUUID(field, value.String())
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return InList(field, value.String(), params)
}

func notInValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return NotInList(field, value.String(), params)
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	description := "pattern"
	if len(params) > 1 {
		description = params[1]
	}
	return MatchesRegex(field, value.String(), params[0], description)
}

func positiveValidator(field string, value reflect.Value, _ []string) Rule {
	n, ok := numeric(value)
	if !ok {
		return pass()
	}
	return Rule{
		Check: func() bool { return n > 0 },
		Error: ValidationError{
			Field:             field,
			Message:           "must be positive",
			TranslationKey:    "validation.positive",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func nonZeroValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool { return !value.IsZero() },
		Error: ValidationError{
			Field:             field,
			Message:           "must not be zero",
			TranslationKey:    "validation.nonzero",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
