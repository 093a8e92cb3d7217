package core

import (
	"errors"
	"fmt"
)

// Kind classifies every error the notes domain can report.
type Kind int

const (
	// KindIO is a filesystem failure.
	KindIO Kind = iota + 1
	// KindSerialization is a corrupt or malformed persisted record.
	KindSerialization
	// KindValidation is input that violates a field constraint.
	KindValidation
	// KindNotFound is a reference to a note that does not exist.
	KindNotFound
	// KindInvalidInput is a malformed command argument.
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindSerialization:
		return "serialization error"
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Error is the single error type of the domain.
// Only the fields relevant to Kind are populated.
type Error struct {
	Kind  Kind
	Op    string // operation, e.g. "save" or "read"
	ID    string // note id (NotFound)
	Field string // offending field (Validation)
	Path  string // file involved (IO, Serialization)
	Msg   string
	Err   error
}

// Sentinels for use with errors.Is. They match any *Error of the same Kind.
var (
	ErrIO            = &Error{Kind: KindIO}
	ErrSerialization = &Error{Kind: KindSerialization}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
)

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindValidation:
		if e.Field != "" {
			return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case KindNotFound:
		if e.Msg != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		}
		return fmt.Sprintf("%s: note with id '%s'", e.Kind, e.ID)
	case KindIO, KindSerialization:
		msg := e.Kind.String()
		if e.Op != "" {
			msg += ": " + e.Op
		}
		if e.Path != "" {
			msg += " " + e.Path
		}
		if e.Msg != "" {
			msg += ": " + e.Msg
		}
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	default:
		if e.Err != nil && e.Msg == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the Kind of err. Errors outside the taxonomy are reported as KindIO.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.Kind != 0 {
		return e.Kind
	}
	return KindIO
}

// ValidationError reports a field constraint violation.
func ValidationError(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

// NotFound reports a missing note.
func NotFound(id string) error {
	return &Error{Kind: KindNotFound, ID: id}
}

// InvalidInput reports a malformed argument.
func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// IOError wraps a filesystem failure.
func IOError(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// SerializationError wraps a decoding or encoding failure.
func SerializationError(path string, err error) error {
	return &Error{Kind: KindSerialization, Op: "parse", Path: path, Err: err}
}
