package utils

import "strings"

// Ptr returns a pointer to v, for filling nullable entity fields inline.
func Ptr[T any](v T) *T {
	return &v
}

// OrZero dereferences v, substituting the zero value for nil.
func OrZero[T comparable](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// StringOrNil maps an empty or all-whitespace string to nil, so optional
// form fields persist as NULL instead of "".
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
