package addin

// Control is the ribbon control passed to the activation callback.
type Control interface {
	// ID is the id attribute of the activated control.
	ID() string
	// Tag is the tag attribute of the activated control.
	Tag() string
	// Context is the window or document the control was activated in.
	Context() any
}

// RibbonControl is a plain Control value.
type RibbonControl struct {
	ControlID  string
	ControlTag string
	Window     any
}

func (c RibbonControl) ID() string   { return c.ControlID }
func (c RibbonControl) Tag() string  { return c.ControlTag }
func (c RibbonControl) Context() any { return c.Window }

// controlOf returns arg as a Control. The callback does not use the
// control beyond recording its id, so other values are tolerated.
func controlOf(arg any) Control {
	switch c := arg.(type) {
	case Control:
		return c
	case string:
		return RibbonControl{ControlID: c}
	default:
		return nil
	}
}
