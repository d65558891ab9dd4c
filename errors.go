package notebridge

import (
	"errors"

	"github.com/zero-day-ai/notebridge/fault"
)

// Sentinel errors, re-exported for errors.Is checks against the facade.
var (
	ErrNotConnected     = fault.ErrNotConnected
	ErrUnknownOperation = fault.ErrUnknownOperation
	ErrBadArity         = fault.ErrBadArity
	ErrTypeMismatch     = fault.ErrTypeMismatch

	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Activation failure codes.
const (
	CodeTargetNotFound    = fault.CodeTargetNotFound
	CodeInvalidTarget     = fault.CodeInvalidTarget
	CodePermissionDenied  = fault.CodePermissionDenied
	CodeAssociationFailed = fault.CodeAssociationFailed
	CodeExecutionFailed   = fault.CodeExecutionFailed
)

// CodeOf returns the activation code carried by err, or "".
func CodeOf(err error) string {
	return fault.CodeOf(err)
}
