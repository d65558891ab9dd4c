package dispatch

import (
	"errors"
	"fmt"

	ole "github.com/go-ole/go-ole"
)

// HRESULT values returned to the host. go-ole covers the generic E_* codes;
// the DISP_E_* family is declared here.
const (
	DISP_E_UNKNOWNNAME    uintptr = 0x80020006
	DISP_E_MEMBERNOTFOUND uintptr = 0x80020003
	DISP_E_TYPEMISMATCH   uintptr = 0x80020005
	DISP_E_BADPARAMCOUNT  uintptr = 0x8002000E
	DISP_E_EXCEPTION      uintptr = 0x80020009
)

func oleError(hr uintptr, err error, format string, args ...any) *ole.OleError {
	return ole.NewErrorWithSubError(hr, fmt.Sprintf(format, args...), err)
}

// HResult returns the HRESULT carried by err, S_OK for nil and E_FAIL for
// errors that are not *ole.OleError.
func HResult(err error) uintptr {
	if err == nil {
		return ole.S_OK
	}
	var oe *ole.OleError
	if errors.As(err, &oe) {
		return oe.Code()
	}
	return ole.E_FAIL
}

// Cause returns the error an *ole.OleError wraps, or err itself. OleError
// has no Unwrap, so errors.Is against fault sentinels goes through Cause.
func Cause(err error) error {
	var oe *ole.OleError
	if errors.As(err, &oe) && oe.SubError() != nil {
		return oe.SubError()
	}
	return err
}
