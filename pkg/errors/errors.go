// Package errors provides structured diagnostics for the reactivity runtime.
//
// Nothing in the runtime fails with a Go error: invalid input degrades to
// returning the original value. The conditions worth knowing about are
// described by ReactiveError and delivered to the installed ErrorHandler.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidTarget indicates a value that cannot be wrapped or marked.
	KindInvalidTarget
	// KindInvalidKey indicates a key a weak collection cannot hold.
	KindInvalidKey
	// KindReadonly indicates a write attempted through a read-only wrapper.
	KindReadonly
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration loading error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidTarget:
		return "invalid_target"
	case KindInvalidKey:
		return "invalid_key"
	case KindReadonly:
		return "readonly"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ReactiveError represents a structured diagnostic in the reactivity runtime.
type ReactiveError struct {
	// Op is the operation that reported the error (e.g., "reactive.Reactive").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Target is the runtime type tag of the value involved, if any.
	Target string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReactiveError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s [%s] target=%s: %v", e.Op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReactiveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "reactive.Trigger").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the reactivity runtime.
type ErrorHandler interface {
	// HandleError is called when a diagnostic is reported.
	HandleError(err *ReactiveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
