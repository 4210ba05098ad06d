package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindPersistence
)

// Fault is the uniform failure result every core operation returns.
// Kind classifies the failure so callers can map it without parsing
// message text; Field carries the offending field key on validation
// failures; Err keeps the underlying cause for boundary logging.
type Fault struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.kindString(), f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.kindString(), f.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) kindString() string {
	switch f.Kind {
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "ValidationFailed"
	case KindPersistence:
		return "PersistenceError"
	default:
		return "Unknown"
	}
}

// NotFound reports a missing resource, e.g. a form id that was never
// created.
func NotFound(msg string) error {
	return &Fault{Kind: KindNotFound, Message: msg}
}

// ValidationFailed reports the first required field key with no
// usable answer.
func ValidationFailed(fieldKey string) error {
	return &Fault{
		Kind:    KindValidation,
		Field:   fieldKey,
		Message: fmt.Sprintf("missing required field %q", fieldKey),
	}
}

// Persistence wraps a storage-layer failure. The cause stays attached
// for logging but is never shown to the caller.
func Persistence(msg string, err error) error {
	return &Fault{Kind: KindPersistence, Message: msg, Err: err}
}

func As(err error) (*Fault, bool) {
	var f *Fault
	ok := errors.As(err, &f)
	return f, ok
}

func IsNotFound(err error) bool {
	f, ok := As(err)
	return ok && f.Kind == KindNotFound
}

func IsValidation(err error) bool {
	f, ok := As(err)
	return ok && f.Kind == KindValidation
}

func IsPersistence(err error) bool {
	f, ok := As(err)
	return ok && f.Kind == KindPersistence
}
