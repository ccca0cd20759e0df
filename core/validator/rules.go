package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinLenString checks that value has at least min characters.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenString checks that value has at most max characters.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// ValidEmail checks that value is a bare RFC 5322 address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidURL checks that value is an absolute URL with scheme and host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(value)
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid URL",
			TranslationKey:    "validation.url",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidUUID checks that value parses as a UUID of any version.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid UUID",
			TranslationKey:    "validation.uuid",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidUUIDVersionString checks that value is a UUID of the given version.
func ValidUUIDVersionString(field, value string, version int) Rule {
	return Rule{
		Check: func() bool {
			id, err := uuid.Parse(value)
			return err == nil && int(id.Version()) == version
		},
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be a valid UUID version %d", version),
			TranslationKey:    "validation.uuid_version",
			TranslationValues: map[string]any{"field": field, "version": version},
		},
	}
}

// InList checks that value is one of allowed.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			TranslationKey:    "validation.in",
			TranslationValues: map[string]any{"field": field, "values": allowed},
		},
	}
}

// NotInList checks that value is none of forbidden.
func NotInList(field, value string, forbidden []string) Rule {
	return Rule{
		Check: func() bool { return !slices.Contains(forbidden, value) },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must not be one of: %s", strings.Join(forbidden, ", ")),
			TranslationKey:    "validation.not_in",
			TranslationValues: map[string]any{"field": field, "values": forbidden},
		},
	}
}

// ValidAlphanumeric checks that value only contains letters and digits.
func ValidAlphanumeric(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must contain only letters and digits",
			TranslationKey:    "validation.alphanum",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidNumericString checks that value only contains ASCII digits.
func ValidNumericString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return false
			}
			for _, r := range value {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must contain only digits",
			TranslationKey:    "validation.numeric",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

var (
	regexCacheMu sync.RWMutex
	regexCache   = map[string]*regexp.Regexp{}
)

func compileCached(pattern string) (*regexp.Regexp, error) {
	regexCacheMu.RLock()
	re, ok := regexCache[pattern]
	regexCacheMu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	regexCacheMu.Lock()
	regexCache[pattern] = re
	regexCacheMu.Unlock()
	return re, nil
}

// MatchesRegex checks value against pattern. An invalid pattern fails the rule.
func MatchesRegex(field, value, pattern, description string) Rule {
	return Rule{
		Check: func() bool {
			re, err := compileCached(pattern)
			return err == nil && re.MatchString(value)
		},
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must match %s", description),
			TranslationKey:    "validation.regex",
			TranslationValues: map[string]any{"field": field, "pattern": description},
		},
	}
}
