package patch

import "strings"

// Coalesce dereferences an optional request field, falling back when it was omitted.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// TrimSpace trims every given string field in place.
func TrimSpace(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
