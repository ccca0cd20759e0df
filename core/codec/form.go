package codec

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/dmitrymomot/requestdto/core/binder"
)

const MediaTypeForm = "application/x-www-form-urlencoded"

type formCodec struct{ settings }

// Form returns the URL-encoded form codec. Fields are matched by their `form`
// tag, or the lower-cased field name without one; `form:"-"` skips a field.
// Slices take every value of a key, comma-separated values included.
// Pointers are allocated on demand.
func Form(opts ...Option) Codec {
	return formCodec{newSettings(opts)}
}

func (formCodec) ContentType() string { return MediaTypeForm }

func (formCodec) Marshal(v any) ([]byte, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: form body must be a struct, got %T", ErrEncode, v)
	}

	values := url.Values{}
	rt := rv.Type()
	for i := range rv.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, skip := formFieldName(sf)
		if skip {
			continue
		}

		field := reflect.Indirect(rv.Field(i))
		if !field.IsValid() {
			continue
		}
		if field.Kind() == reflect.Slice {
			for j := range field.Len() {
				values.Add(name, fmt.Sprint(field.Index(j).Interface()))
			}
			continue
		}
		values.Set(name, fmt.Sprint(field.Interface()))
	}
	return []byte(values.Encode()), nil
}

func (c formCodec) Unmarshal(data []byte, v any) error {
	if err := c.checkSize(data); err != nil {
		return err
	}

	values, err := url.ParseQuery(string(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrDecode)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrDecode)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, skip := formFieldName(sf)
		if skip {
			continue
		}

		fieldValues, ok := values[name]
		if !ok || len(fieldValues) == 0 {
			continue
		}
		if err := setFormField(field, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %w", ErrDecode, sf.Name, err)
		}
	}

	return c.finish(v)
}

func formFieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("form")
	switch tag {
	case "-":
		return "", true
	case "":
		return strings.ToLower(sf.Name), false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, name == ""
}

func setFormField(field reflect.Value, values []string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setFormField(field.Elem(), values)
	}

	// Every value of the key is used and comma-separated values are split.
	if field.Kind() == reflect.Slice && field.Type().Elem().Kind() != reflect.Uint8 {
		var all []string
		for _, v := range values {
			all = append(all, strings.Split(v, ",")...)
		}
		slice := reflect.MakeSlice(field.Type(), len(all), len(all))
		for i, raw := range all {
			if err := binder.CoerceInto(slice.Index(i).Addr().Interface(), strings.TrimSpace(raw)); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	return binder.CoerceInto(field.Addr().Interface(), values[0])
}
