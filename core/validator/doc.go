// Package validator provides tag-based constraint validation for request
// objects, with programmatic rules and aggregate error reporting.
//
// # Struct Tags
//
// Rules are listed in the `validate` tag, separated by semicolons. Parameters
// follow a colon and are separated by commas:
//
//	type CreateUserInput struct {
//		Name   string   `validate:"required;min:2;max:50"`
//		Email  string   `validate:"required;email"`
//		Role   string   `validate:"in:admin,editor,viewer"`
//		TeamID string   `validate:"uuid:4"`
//		Tags   []string `validate:"max:5"`
//		Age    *int     `validate:"between:18,120"` // nil pointers skip everything but required
//	}
//
//	if err := validator.ValidateStruct(&input); err != nil {
//		for field, msgs := range validator.ExtractValidationErrors(err).Fields() {
//			log.Printf("%s: %v", field, msgs)
//		}
//	}
//
// Nested structs without a tag are validated recursively; field paths are
// dotted ("Address.City"). A tag of "-" skips the field.
//
// Built-in rules: required, min, max, len, between, email, url, alphanum,
// numeric, uuid, in, not_in, regex, positive, nonzero. RegisterValidator adds
// or replaces rules at startup.
//
// # Programmatic Rules
//
//	err := validator.Apply(
//		validator.MinLenString("name", in.Name, 2),
//		validator.InList("state", in.State, []string{"draft", "published"}),
//	)
//
// # Errors
//
// Every violation is collected, never only the first. ValidationErrors
// implements error; IsValidationError and ExtractValidationErrors unwrap it from
// wrapped errors. Each ValidationError carries a TranslationKey and values so
// messages can be localised with Translate.
package validator
