package uidfield

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPattern is the shape a UID must have: URL-safe characters only.
var DefaultPattern = regexp.MustCompile(`^[A-Za-z0-9\-_.~]*$`)

type ValidationReason string

const (
	ReasonRequired ValidationReason = "required"
	ReasonPattern  ValidationReason = "regex"
)

type ValidationError struct {
	Field  string
	Reason ValidationReason
}

func (e ValidationError) Error() string {
	switch e.Reason {
	case ReasonRequired:
		return fmt.Sprintf("%s is required", e.Field)
	case ReasonPattern:
		return fmt.Sprintf("%s may only contain letters, digits and - _ . ~", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Is matches any ValidationError with the same reason, so callers can write
// errors.Is(err, ValidationError{Reason: ReasonRequired}).
func (e ValidationError) Is(target error) bool {
	t, ok := target.(ValidationError)
	return ok && t.Reason == e.Reason
}

func matchesShape(pattern *regexp.Regexp, value string) bool {
	return pattern.MatchString(strings.TrimSpace(value))
}

// Validate checks value against the required flag and the UID shape.
func Validate(field, value string, required bool, pattern *regexp.Regexp) error {
	if pattern == nil {
		pattern = DefaultPattern
	}
	if strings.TrimSpace(value) == "" {
		if required {
			return ValidationError{Field: field, Reason: ReasonRequired}
		}
		return nil
	}
	if !matchesShape(pattern, value) {
		return ValidationError{Field: field, Reason: ReasonPattern}
	}
	return nil
}
