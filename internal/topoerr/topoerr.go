// Package topoerr defines the structured error type shared by every
// core operation, per the error taxonomy in the operation facade's spec.
package topoerr

import "fmt"

// Kind enumerates the error categories an operation can return. These are
// categories, not Go types — every operation returns the same *Error shape.
type Kind string

const (
	// KindInvalidInput covers malformed JSON, wrong field types, missing
	// required fields, out-of-range numeric arguments, and empty batches
	// where an operation requires at least one record.
	KindInvalidInput Kind = "invalid-input"
	// KindFieldMissing marks a row whose requested text field is absent.
	// Most operations silently skip the row; classify fails fast only
	// when every row is empty.
	KindFieldMissing Kind = "field-missing"
	// KindTaxonomyLoad covers an unreadable or schema-invalid taxonomy file.
	KindTaxonomyLoad Kind = "taxonomy-load"
	// KindNumeric covers degenerate numeric inputs such as an all-zero
	// distance matrix; callers get a result with a Warning, not an error.
	KindNumeric Kind = "numeric"
	// KindIO covers taxonomy file or organize output-dir failures.
	KindIO Kind = "io"
)

// Error is the single structured error shape every operation returns.
// A result is either a value or exactly one Error; never both.
type Error struct {
	Kind    Kind
	Message string
	Field   string // optional: which argument or record field caused it
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithField attaches a field name to an existing error kind.
func WithField(kind Kind, message, field string) *Error {
	return &Error{Kind: kind, Message: message, Field: field}
}

// Invalid is shorthand for a KindInvalidInput error.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}
