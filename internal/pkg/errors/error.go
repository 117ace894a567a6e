package xerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common reusable application errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("conflict: resource already exists")
	ErrInternal           = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// SequenceError reports a failure partway through an ordered chain of
// dependent writes. The writes are not wrapped in a transaction, so the
// completed prefix stays committed; the caller decides on remediation.
// Retrying blindly would re-run the completed steps.
type SequenceError struct {
	Op        string   // operation that was running, e.g. "purchase_feed"
	Completed []string // steps that committed before the failure
	Step      string   // step that failed
	Err       error
}

func (e *SequenceError) Error() string {
	done := "none"
	if len(e.Completed) > 0 {
		done = strings.Join(e.Completed, ", ")
	}
	return fmt.Sprintf("%s: step %q failed after completing [%s]: %v", e.Op, e.Step, done, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
