package formflow

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Rule checks a single field value and returns a message when it fails.
type Rule func(value string) (message string, ok bool)

// MinLen requires at least n characters.
func MinLen(n int) Rule {
	return func(value string) (string, bool) {
		if utf8.RuneCountInString(value) >= n {
			return "", true
		}
		return fmt.Sprintf("String must contain at least %d character(s)", n), false
	}
}

// MaxLen allows at most n characters.
func MaxLen(n int) Rule {
	return func(value string) (string, bool) {
		if utf8.RuneCountInString(value) <= n {
			return "", true
		}
		return fmt.Sprintf("String must contain at most %d character(s)", n), false
	}
}

// Required fails on empty or whitespace-only values with the given message.
func Required(message string) Rule {
	return func(value string) (string, bool) {
		if strings.TrimSpace(value) != "" {
			return "", true
		}
		return message, false
	}
}

// Field is one validated input of a form.
type Field[V any] struct {
	Name  string
	Value func(V) string
	Rules []Rule
}

// Schema is an ordered list of fields. Only the first failing rule of each field is reported.
type Schema[V any] []Field[V]

// Validate runs every field and returns the failures, or nil when the values are valid.
func (s Schema[V]) Validate(values V) FieldErrors {
	var errs FieldErrors
	for _, f := range s {
		v := f.Value(values)
		for _, rule := range f.Rules {
			if msg, ok := rule(v); !ok {
				if errs == nil {
					errs = make(FieldErrors)
				}
				errs[f.Name] = msg
				break
			}
		}
	}
	return errs
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidationError is returned by Submit when the schema rejects the values.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range e.Fields.Fields() {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid form values: " + strings.Join(parts, "; ")
}
