// Package apperr classifies errors into coarse kinds that HTTP handlers and
// the CLI can map to responses without depending on each other.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindInvalidColorFormat Kind = "invalid_color_format"
	KindValidation         Kind = "validation"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindUpstream           Kind = "upstream"
	KindInternal           Kind = "internal"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  Kind
	Field string // optional: offending input field
	Err   error
}

// E builds an OpError.
func E(op string, kind Kind, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// WithField returns a copy of e tagged with the offending input field.
func (e *OpError) WithField(field string) *OpError {
	cp := *e
	cp.Field = field
	return &cp
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether the outermost OpError in err's chain has kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the outermost OpError in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindInternal
}

// FieldOf returns the field recorded on the outermost OpError, if any.
func FieldOf(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Field
	}
	return ""
}
