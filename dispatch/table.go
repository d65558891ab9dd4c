package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	ole "github.com/go-ole/go-ole"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/notebridge/fault"
)

// methodEntry represents a registered operation with its descriptor and handler.
type methodEntry struct {
	descriptor MethodDescriptor
	handler    Handler
}

// Config holds the operations to expose. Use NewConfig, register operations
// with AddMethod, then build the Table with New.
type Config struct {
	methods []methodEntry
	tracer  trace.Tracer
}

// NewConfig creates an empty configuration.
func NewConfig() *Config {
	return &Config{
		methods: make([]methodEntry, 0),
	}
}

// AddMethod registers an operation. Dispatch identifiers follow registration
// order, starting at 1.
func (c *Config) AddMethod(name, description string, handler Handler, params ...Param) {
	c.methods = append(c.methods, methodEntry{
		descriptor: MethodDescriptor{
			Name:        name,
			Description: description,
			Params:      params,
		},
		handler: handler,
	})
}

// SetTracer sets the tracer used to create one span per invocation.
func (c *Config) SetTracer(tracer trace.Tracer) {
	c.tracer = tracer
}

// Table is an immutable name to operation mapping.
type Table struct {
	methods []methodEntry
	byName  map[string]int
	byFold  map[string]int
	tracer  trace.Tracer
}

// New builds a Table from cfg. It fails on a nil config, an empty or
// duplicate name, names that differ only by case, a missing handler, or a
// parameter type the host cannot marshal.
func New(cfg *Config) (*Table, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	t := &Table{
		methods: make([]methodEntry, 0, len(cfg.methods)),
		byName:  make(map[string]int, len(cfg.methods)),
		byFold:  make(map[string]int, len(cfg.methods)),
		tracer:  cfg.tracer,
	}
	if t.tracer == nil {
		t.tracer = noop.NewTracerProvider().Tracer("")
	}

	for _, entry := range cfg.methods {
		name := entry.descriptor.Name
		if name == "" {
			return nil, fmt.Errorf("method name cannot be empty")
		}
		if _, exists := t.byName[name]; exists {
			return nil, fmt.Errorf("duplicate method name: %s", name)
		}
		if idx, exists := t.byFold[strings.ToLower(name)]; exists {
			return nil, fmt.Errorf("method name %s collides with %s", name, t.methods[idx].descriptor.Name)
		}
		if entry.handler == nil {
			return nil, fmt.Errorf("method %s has no handler", name)
		}
		for _, p := range entry.descriptor.Params {
			if !supported(p.Type) {
				return nil, fmt.Errorf("method %s: parameter %s has unsupported type %#x", name, p.Name, uint16(p.Type))
			}
		}

		entry.descriptor.DispID = int32(len(t.methods) + 1)
		t.byName[name] = len(t.methods)
		t.byFold[strings.ToLower(name)] = len(t.methods)
		t.methods = append(t.methods, entry)
	}

	return t, nil
}

func supported(vt ole.VT) bool {
	switch vt {
	case ole.VT_BSTR, ole.VT_I4, ole.VT_DISPATCH, ole.VT_UNKNOWN, ole.VT_VARIANT, VTCustomArray:
		return true
	}
	return false
}

// Names returns the exposed operation names in dispatch identifier order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.methods))
	for _, entry := range t.methods {
		names = append(names, entry.descriptor.Name)
	}
	return names
}

// Methods returns the descriptors of all exposed operations.
func (t *Table) Methods() []MethodDescriptor {
	descriptors := make([]MethodDescriptor, 0, len(t.methods))
	for _, entry := range t.methods {
		d := entry.descriptor
		d.Params = append([]Param(nil), d.Params...)
		descriptors = append(descriptors, d)
	}
	return descriptors
}

// Has reports whether name is exposed with exactly this spelling.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Lookup returns the descriptor for the exact name.
func (t *Table) Lookup(name string) (MethodDescriptor, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return MethodDescriptor{}, false
	}
	return t.methods[idx].descriptor, true
}

// Verify returns an integration fault listing every required name that is
// not exposed with exactly that spelling.
func (t *Table) Verify(required ...string) error {
	var errs []error
	for _, name := range required {
		if !t.Has(name) {
			errs = append(errs, fault.Integration("dispatch.Verify",
				fmt.Errorf("%w: %s", fault.ErrUnknownOperation, name)))
		}
	}
	return errors.Join(errs...)
}

// GetIDsOfNames maps names to dispatch identifiers, ignoring case. Unknown
// names map to ole.DISPID_UNKNOWN and make the call fail with
// DISP_E_UNKNOWNNAME; identifiers for the known names are still filled in.
func (t *Table) GetIDsOfNames(names ...string) ([]int32, error) {
	ids := make([]int32, len(names))
	var unknown []string
	for i, name := range names {
		idx, ok := t.byFold[strings.ToLower(name)]
		if !ok {
			ids[i] = ole.DISPID_UNKNOWN
			unknown = append(unknown, name)
			continue
		}
		ids[i] = t.methods[idx].descriptor.DispID
	}
	if len(unknown) > 0 {
		return ids, oleError(DISP_E_UNKNOWNNAME, fault.ErrUnknownOperation, "unknown name: %s", strings.Join(unknown, ", "))
	}
	return ids, nil
}

// Call resolves name the way the host does and invokes it.
func (t *Table) Call(ctx context.Context, name string, args ...any) (any, error) {
	ids, err := t.GetIDsOfNames(name)
	if err != nil {
		return nil, err
	}
	return t.Invoke(ctx, ids[0], args...)
}

// Invoke calls the operation with the given dispatch identifier.
func (t *Table) Invoke(ctx context.Context, dispID int32, args ...any) (any, error) {
	if dispID < 1 || int(dispID) > len(t.methods) {
		return nil, oleError(DISP_E_MEMBERNOTFOUND, fault.ErrUnknownOperation, "dispid %d", dispID)
	}
	return t.invoke(ctx, t.methods[dispID-1], args)
}

func (t *Table) invoke(ctx context.Context, entry methodEntry, args []any) (result any, err error) {
	d := entry.descriptor
	ctx, span := t.tracer.Start(ctx, "dispatch."+d.Name,
		trace.WithAttributes(
			attribute.Int("dispatch.dispid", int(d.DispID)),
			attribute.Int("dispatch.arity", len(args)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = oleError(ole.E_UNEXPECTED, fault.ErrPanic, "%s: %v", d.Name, r)
		}
	}()

	if len(args) != d.Arity() {
		return nil, oleError(DISP_E_BADPARAMCOUNT, fault.ErrBadArity, "%s expects %d arguments, got %d", d.Name, d.Arity(), len(args))
	}

	normalized := make([]any, len(args))
	for i, p := range d.Params {
		v, cerr := coerce(p.Type, args[i])
		if cerr != nil {
			return nil, oleError(DISP_E_TYPEMISMATCH, fault.ErrTypeMismatch, "%s: parameter %s: %v", d.Name, p.Name, cerr)
		}
		normalized[i] = v
	}

	result, err = entry.handler(ctx, normalized)
	if err != nil {
		var oe *ole.OleError
		if errors.As(err, &oe) {
			return nil, err
		}
		return nil, oleError(DISP_E_EXCEPTION, err, "%s failed", d.Name)
	}
	return result, nil
}

// coerce normalizes a host argument to the Go value handlers receive.
func coerce(vt ole.VT, arg any) (any, error) {
	switch vt {
	case ole.VT_BSTR:
		switch v := arg.(type) {
		case string:
			return v, nil
		case *string:
			if v != nil {
				return *v, nil
			}
		}
	case ole.VT_I4:
		return toInt32(arg)
	case ole.VT_DISPATCH, ole.VT_UNKNOWN, ole.VT_VARIANT:
		return arg, nil
	case VTCustomArray:
		switch v := arg.(type) {
		case nil:
			return (*[]any)(nil), nil
		case *[]any:
			return v, nil
		case []any:
			return &v, nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", arg, vtName(vt))
}

func toInt32(arg any) (any, error) {
	switch v := arg.(type) {
	case ole.VARIANT:
		return variantInt32(&v)
	case *ole.VARIANT:
		if v != nil {
			return variantInt32(v)
		}
		return nil, fmt.Errorf("cannot use nil *VARIANT as VT_I4")
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("value %d overflows VT_I4", n)
		}
		return int32(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("value %d overflows VT_I4", n)
		}
		return int32(n), nil
	}
	return nil, fmt.Errorf("cannot use %T as VT_I4", arg)
}

func variantInt32(v *ole.VARIANT) (any, error) {
	switch v.VT {
	case ole.VT_I1, ole.VT_I2, ole.VT_I4, ole.VT_INT, ole.VT_UI1, ole.VT_UI2, ole.VT_UI4, ole.VT_UINT, ole.VT_I8, ole.VT_UI8:
		return toInt32(v.Value())
	}
	return nil, fmt.Errorf("cannot use VARIANT of type %s as VT_I4", v.VT)
}

func vtName(vt ole.VT) string {
	if vt == VTCustomArray {
		return "VT_ARRAY|VT_VARIANT|VT_BYREF"
	}
	return vt.String()
}
