// Package dispatch exposes add-in operations to a host that resolves them by
// name at call time (late binding) instead of through a shared, compiled
// interface definition.
//
// # Core Concepts
//
// A Table maps operation names to handlers. Each operation declares its
// parameters as OLE Automation variant types, the only shapes a host can
// marshal across the boundary:
//
//   - ole.VT_BSTR for strings
//   - ole.VT_I4 for integers and enumerations
//   - ole.VT_DISPATCH for opaque object references
//   - ole.VT_ARRAY|ole.VT_VARIANT|ole.VT_BYREF for the reserved in/out array
//
// The host first asks for dispatch identifiers with GetIDsOfNames and then
// calls Invoke with the identifier and positional arguments.
//
// # Building a Table
//
//	cfg := dispatch.NewConfig()
//	cfg.AddMethod("GetCustomUI", "Returns the ribbon XML", getCustomUI,
//	    dispatch.String("RibbonID"),
//	)
//	table, err := dispatch.New(cfg)
//
// # Contract
//
// Names are unique, non-empty and may not collide case-insensitively, since
// hosts following OLE Automation rules resolve names without regard to case.
// Verify checks that every name required by the host contract is present;
// it is meant for construction time and tests, the host itself has no way to
// negotiate alternatives.
//
// # Error Handling
//
// Host-facing failures are returned as *ole.OleError carrying the HRESULT the
// host expects (DISP_E_UNKNOWNNAME, DISP_E_BADPARAMCOUNT,
// DISP_E_TYPEMISMATCH, DISP_E_MEMBERNOTFOUND, E_UNEXPECTED). A panic in a
// handler is recovered and reported as E_UNEXPECTED.
package dispatch
