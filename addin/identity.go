package addin

import (
	"errors"
	"fmt"
	"strings"

	ole "github.com/go-ole/go-ole"
)

// Identity is how the host registry knows the add-in.
type Identity struct {
	CLSID        string
	ProgID       string
	FriendlyName string
	Description  string
}

// DefaultIdentity returns the registered identity of the Obsidian exporter.
func DefaultIdentity() Identity {
	return Identity{
		CLSID:        "{C1E7A840-D4B5-4E8B-B63F-0A4E7C3A9E1F}",
		ProgID:       "OneNoteExportAddin.Connect",
		FriendlyName: "OneNote Obsidian Export",
		Description:  "Exports the current OneNote page to an Obsidian vault.",
	}
}

// GUID returns the parsed class identifier, or nil when it is malformed.
func (i Identity) GUID() *ole.GUID {
	return ole.NewGUID(i.CLSID)
}

// Validate checks that the CLSID is a GUID and the ProgID has the
// Program.Component form.
func (i Identity) Validate() error {
	var errs []error
	if i.GUID() == nil {
		errs = append(errs, fmt.Errorf("invalid CLSID %q", i.CLSID))
	}
	if i.ProgID == "" || !strings.Contains(i.ProgID, ".") || strings.ContainsAny(i.ProgID, " \t") {
		errs = append(errs, fmt.Errorf("invalid ProgID %q", i.ProgID))
	}
	return errors.Join(errs...)
}

func (i Identity) String() string {
	return fmt.Sprintf("%s %s", i.ProgID, i.GUID())
}
