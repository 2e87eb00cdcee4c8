// Package errors provides error annotation with slog attributes and source
// locations so that failures can be logged with their full context.
//
// It re-exports the stdlib helpers (Is, As, Join, ...) so callers only need
// one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// annotatedError is an error carrying slog attributes and the source
// location where it was created.
type annotatedError struct {
	msg   string
	cause error
	attrs []slog.Attr
	file  string
	line  int
}

// Error implements the error interface.
func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap exposes the wrapped error to the stdlib errors traversal.
func (e *annotatedError) Unwrap() error {
	return e.cause
}

// callerSkip is the number of frames to skip so that the recorded source
// location points at the caller of this package, not at this package.
const callerSkip = 2

// newAnnotated constructs an annotatedError with the caller's source location.
func newAnnotated(cause error, msg string, attrs []slog.Attr) *annotatedError {
	file := "unknown"
	line := 0
	if _, f, l, ok := runtime.Caller(callerSkip); ok {
		file = filepath.Base(f)
		line = l
	}
	return &annotatedError{
		msg:   msg,
		cause: cause,
		attrs: attrs,
		file:  file,
		line:  line,
	}
}

// NewSentinel creates a sentinel error that can be annotated with Wrap and
// matched with Is.
func NewSentinel(msg string) error {
	return newAnnotated(nil, msg, nil)
}

// Wrap annotates err with a message and optional slog attributes. The
// resulting error message is "msg: err". Wrapping a nil error yields an
// error with just the message, which keeps logging call sites simple.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return newAnnotated(err, msg, attrs)
}

// SlogError converts an error into a slog attribute group containing the
// error message, any annotations attached along the chain, and the source
// location closest to the failure. It tolerates nil errors.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("msg", "<nil>"))
	}

	attrs := []any{slog.String("msg", err.Error())}

	var annotations []any
	source := ""
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		var annotated *annotatedError
		if errors.As(unwrapped, &annotated) {
			for _, attr := range annotated.attrs {
				annotations = append(annotations, attr)
			}
			// The outermost annotated error is closest to where the
			// failure was handled, so the first location wins.
			if source == "" {
				source = fmt.Sprintf("%s:%d", annotated.file, annotated.line)
			}
			unwrapped = annotated
		}
	}

	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}

	return slog.Group("error", attrs...)
}

// DecoratePanic converts a recovered panic value into an error with the
// stack trace attached as an annotation.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	stack := make([]byte, 4096) //nolint:mnd // enough for a useful trace.
	n := runtime.Stack(stack, false)
	return Wrap(nil, fmt.Sprintf("panic: %v", recovered), slog.String("stack", string(stack[:n])))
}

// New re-exports the stdlib errors.New.
func New(msg string) error {
	return errors.New(msg)
}

// Is re-exports the stdlib errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports the stdlib errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap re-exports the stdlib errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join re-exports the stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
