package ribbon

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/notebridge/fault"
)

// ErrInvalidDescriptor is wrapped by every validation failure.
var ErrInvalidDescriptor = errors.New("invalid ribbon descriptor")

// Validate checks doc's structure: a customUI root in a known namespace, exactly one tab holding
// exactly one group holding exactly one button, non-empty unique ids, non-empty
// labels and a known size. When resolve is non-nil, the button's onAction
// must also resolve through it, verbatim. All failures are returned together.
func Validate(doc *CustomUI, resolve func(name string) bool) error {
	if doc == nil {
		return invalid("descriptor is nil")
	}

	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, invalid(format, args...))
	}

	if doc.XMLName.Local != RootElement {
		add("root element is %q, want %q", doc.XMLName.Local, RootElement)
	}
	switch ns := doc.Namespace(); ns {
	case Namespace2006, Namespace2009:
	default:
		add("unknown namespace %q", ns)
	}

	ids := make(map[string]bool)
	checkID := func(kind, id string) {
		if id == "" {
			add("%s id is empty", kind)
			return
		}
		if ids[id] {
			add("duplicate id %q", id)
		}
		ids[id] = true
	}

	if n := len(doc.Ribbon.Tabs); n != 1 {
		add("expected exactly one tab, found %d", n)
	}
	for _, tab := range doc.Ribbon.Tabs {
		checkID("tab", tab.ID)
		if tab.Label == "" {
			add("tab %q has no label", tab.ID)
		}
		if n := len(tab.Groups); n != 1 {
			add("tab %q: expected exactly one group, found %d", tab.ID, n)
		}
		for _, group := range tab.Groups {
			checkID("group", group.ID)
			if group.Label == "" {
				add("group %q has no label", group.ID)
			}
			if n := len(group.Buttons); n != 1 {
				add("group %q: expected exactly one button, found %d", group.ID, n)
			}
			for _, button := range group.Buttons {
				checkID("button", button.ID)
				if button.Label == "" {
					add("button %q has no label", button.ID)
				}
				switch button.Size {
				case "", SizeNormal, SizeLarge:
				default:
					add("button %q: unknown size %q", button.ID, button.Size)
				}
				if button.OnAction == "" {
					add("button %q has no onAction", button.ID)
				} else if resolve != nil && !resolve(button.OnAction) {
					errs = append(errs, fault.Integration("ribbon.Validate",
						fmt.Errorf("%w: button %q: onAction %q does not name an exposed operation",
							fault.ErrUnknownOperation, button.ID, button.OnAction)))
				}
			}
		}
	}

	return errors.Join(errs...)
}

func invalid(format string, args ...any) error {
	return fault.Integration("ribbon.Validate",
		fmt.Errorf("%w: %s", ErrInvalidDescriptor, fmt.Sprintf(format, args...)))
}
