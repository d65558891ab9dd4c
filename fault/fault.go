package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions shared across packages.
var (
	// ErrNotConnected indicates an operation was delivered while the add-in
	// was not connected to a host.
	ErrNotConnected = errors.New("add-in not connected")

	// ErrUnknownOperation indicates the host asked for an operation name that
	// is not exposed.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrBadArity indicates an operation was invoked with the wrong number of
	// arguments.
	ErrBadArity = errors.New("wrong number of arguments")

	// ErrTypeMismatch indicates an argument does not have the declared shape.
	ErrTypeMismatch = errors.New("argument type mismatch")

	// ErrPanic wraps a recovered panic.
	ErrPanic = errors.New("recovered panic")
)

// Kind categorizes an Error by the boundary that owns it.
type Kind string

const (
	KindIntegration   Kind = "integration"
	KindLifecycle     Kind = "lifecycle"
	KindActivation    Kind = "activation"
	KindDiagnostic    Kind = "diagnostic"
	KindConfiguration Kind = "configuration"
)

// Codes refine activation faults.
const (
	// CodeTargetNotFound indicates the configured external tool does not exist.
	CodeTargetNotFound = "TARGET_NOT_FOUND"

	// CodeInvalidTarget indicates the target exists but cannot be launched
	// (a directory, an empty path).
	CodeInvalidTarget = "INVALID_TARGET"

	// CodePermissionDenied indicates the caller may not read or run the target.
	CodePermissionDenied = "PERMISSION_DENIED"

	// CodeAssociationFailed indicates the shell could not resolve a handler
	// for the target's file type.
	CodeAssociationFailed = "ASSOCIATION_FAILED"

	// CodeExecutionFailed indicates process creation failed for another reason.
	CodeExecutionFailed = "EXECUTION_FAILED"
)

// Error is a structured error carrying the failed operation, its kind and an
// optional code.
type Error struct {
	// Op is the operation that failed (e.g. "ExportToObsidian", "launch").
	Op string

	// Kind is the boundary that owns the error.
	Kind Kind

	// Code refines Kind, mostly for activation faults.
	Code string

	// Err is the underlying cause.
	Err error

	// Context carries additional key/value information.
	Context map[string]any
}

// Error formats the error as "op (kind/code): cause".
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(" (")
	b.WriteString(string(e.Kind))
	if e.Code != "" {
		b.WriteString("/")
		b.WriteString(e.Code)
	}
	b.WriteString(")")
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Context) > 0 {
		fmt.Fprintf(&b, " [context: %+v]", e.Context)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, then by Op and Code when the target sets
// them. Otherwise matching is delegated to the cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if (t.Op == "" || e.Op == t.Op) && (t.Code == "" || e.Code == t.Code) {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with ctx merged into its context.
func (e *Error) WithContext(ctx map[string]any) *Error {
	out := *e
	out.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		out.Context[k] = v
	}
	for k, v := range ctx {
		out.Context[k] = v
	}
	return &out
}

// New creates an Error.
func New(op string, kind Kind, code string, err error) *Error {
	return &Error{Op: op, Kind: kind, Code: code, Err: err}
}

// Integration creates an Error of KindIntegration.
func Integration(op string, err error) *Error {
	return New(op, KindIntegration, "", err)
}

// Lifecycle creates an Error of KindLifecycle.
func Lifecycle(op string, err error) *Error {
	return New(op, KindLifecycle, "", err)
}

// Activation creates an Error of KindActivation with the given code.
func Activation(op, code string, err error) *Error {
	return New(op, KindActivation, code, err)
}

// Diagnostic creates an Error of KindDiagnostic.
func Diagnostic(op string, err error) *Error {
	return New(op, KindDiagnostic, "", err)
}

// Configuration creates an Error of KindConfiguration.
func Configuration(op string, err error) *Error {
	return New(op, KindConfiguration, "", err)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
