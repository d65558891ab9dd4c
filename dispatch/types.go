package dispatch

import (
	"context"

	ole "github.com/go-ole/go-ole"
)

// VTCustomArray is the shape of the reserved in/out array passed to the
// lifecycle operations: a by-reference SAFEARRAY of VARIANT.
const VTCustomArray = ole.VT_ARRAY | ole.VT_VARIANT | ole.VT_BYREF

// Handler handles one invocation. Arguments arrive normalized according to
// the declared parameter types: int32 for integers, string for strings, any
// for object references and *[]any for the in/out array.
type Handler func(ctx context.Context, args []any) (any, error)

// Param declares one positional parameter.
type Param struct {
	// Name is the parameter name, used only for diagnostics.
	Name string

	// Type is the variant type the host marshals for this parameter.
	Type ole.VT
}

// String declares a VT_BSTR parameter.
func String(name string) Param {
	return Param{Name: name, Type: ole.VT_BSTR}
}

// Int declares a VT_I4 parameter (integers and enumerations).
func Int(name string) Param {
	return Param{Name: name, Type: ole.VT_I4}
}

// Object declares a VT_DISPATCH parameter: an opaque object reference that
// may be nil.
func Object(name string) Param {
	return Param{Name: name, Type: ole.VT_DISPATCH}
}

// CustomArray declares the reserved in/out array parameter.
func CustomArray(name string) Param {
	return Param{Name: name, Type: VTCustomArray}
}

// MethodDescriptor describes an exposed operation.
type MethodDescriptor struct {
	// DispID is the dispatch identifier assigned at construction.
	DispID int32

	// Name is the exact operation name the host resolves.
	Name string

	// Description is a human-readable summary.
	Description string

	// Params lists the positional parameters. Its length is the arity.
	Params []Param
}

// Arity returns the declared number of parameters.
func (d MethodDescriptor) Arity() int {
	return len(d.Params)
}
