// Package validation implements declarative request validation: each endpoint
// declares a list of independent field checks, every failure is collected, and
// the full {field, message} list is returned so a client can fix everything in
// one round trip.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// FieldError names one failed check on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule inspects one field; it returns nil on pass.
type Rule func() *FieldError

// Run executes every rule independently and concatenates the failures.
func Run(rules ...Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if fe := r(); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func fail(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotEmpty rejects an empty string.
func NotEmpty(field, value string) Rule {
	return func() *FieldError {
		if value == "" {
			return fail(field, "%s is required", field)
		}
		return nil
	}
}

// LenBetween bounds a string's length; empty strings are left to NotEmpty.
func LenBetween(field, value string, min, max int) Rule {
	return func() *FieldError {
		if value == "" {
			return nil
		}
		if len(value) < min || len(value) > max {
			return fail(field, "%s must be between %d and %d characters", field, min, max)
		}
		return nil
	}
}

// MaxLen caps a string's length.
func MaxLen(field, value string, max int) Rule {
	return func() *FieldError {
		if len(value) > max {
			return fail(field, "%s must be at most %d characters", field, max)
		}
		return nil
	}
}

// OneOf restricts a value to an enumerated set.
func OneOf(field, value string, allowed ...string) Rule {
	return func() *FieldError {
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fail(field, "%s must be one of %v", field, allowed)
	}
}

// PositiveID requires a positive integer identifier; the storage layer's native
// id format is a numeric primary key.
func PositiveID(field, raw string) Rule {
	return func() *FieldError {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return fail(field, "%s is not a valid identifier (INVALID_ID)", field)
		}
		return nil
	}
}

// PositiveIDValue requires a non-zero numeric identifier already parsed.
func PositiveIDValue(field string, id uint) Rule {
	return func() *FieldError {
		if id == 0 {
			return fail(field, "%s is not a valid identifier (INVALID_ID)", field)
		}
		return nil
	}
}

// Matches checks a string against a compiled pattern.
func Matches(field, value string, re *regexp.Regexp, hint string) Rule {
	return func() *FieldError {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return fail(field, "%s %s", field, hint)
		}
		return nil
	}
}

// NonNegative rejects negative numbers.
func NonNegative(field string, value float64) Rule {
	return func() *FieldError {
		if value < 0 {
			return fail(field, "%s must not be negative", field)
		}
		return nil
	}
}

// IntBetween bounds an integer value inclusively.
func IntBetween(field string, value, min, max int) Rule {
	return func() *FieldError {
		if value < min || value > max {
			return fail(field, "%s must be between %d and %d", field, min, max)
		}
		return nil
	}
}

// FutureDate requires t to be strictly after now.
func FutureDate(field string, t time.Time, now time.Time) Rule {
	return func() *FieldError {
		if !t.After(now) {
			return fail(field, "%s must be in the future", field)
		}
		return nil
	}
}

// DateOrder requires end to be strictly after start when both are set.
func DateOrder(startField, endField string, start, end *time.Time) Rule {
	return func() *FieldError {
		if start == nil || end == nil {
			return nil
		}
		if !end.After(*start) {
			return fail(endField, "%s must be after %s", endField, startField)
		}
		return nil
	}
}

// Custom wraps an arbitrary predicate.
func Custom(field string, ok bool, message string) Rule {
	return func() *FieldError {
		if !ok {
			return fail(field, "%s", message)
		}
		return nil
	}
}
