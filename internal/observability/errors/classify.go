// Package errors derives stable class names from error values so parse
// failures can be grouped by cause in metrics.
package errors

import (
	stderrors "errors"
	"reflect"
	"strings"
)

// Classify reduces an error to a tag-safe class name: the concrete type of
// the innermost wrapped error, lowercased, with pointer markers stripped and
// package separators flattened to underscores. A nil error classifies to the
// empty string.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	// The root cause carries more signal than any wrapping layer.
	for inner := stderrors.Unwrap(err); inner != nil; inner = stderrors.Unwrap(err) {
		err = inner
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	class := strings.NewReplacer("*", "", ".", "_").Replace(t.String())
	class = strings.ToLower(class)
	if class == "" {
		return "unknown"
	}
	return class
}
