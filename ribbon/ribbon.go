// Package ribbon builds and checks the ribbon UI descriptor the add-in hands
// to the host from GetCustomUI.
//
// The descriptor is a customUI document with a single tab holding a single
// group with a single button. The button's onAction attribute names the
// activation operation the host resolves by name, so it must match an exposed
// operation verbatim.
package ribbon

import (
	"encoding/xml"
	"fmt"
)

// Known customUI schema namespaces.
const (
	Namespace2006 = "http://schemas.microsoft.com/office/2006/01/customui"
	Namespace2009 = "http://schemas.microsoft.com/office/2009/07/customui"
)

// Button sizes.
const (
	SizeNormal = "normal"
	SizeLarge  = "large"
)

// RootElement is the local name of the document root.
const RootElement = "customUI"

// CustomUI is the document root. XMLName is untagged so its Space is
// rendered as the default xmlns and filled back in on Parse.
type CustomUI struct {
	XMLName xml.Name
	Ribbon  Ribbon `xml:"ribbon"`
}

// Namespace returns the document's default namespace.
func (c *CustomUI) Namespace() string {
	return c.XMLName.Space
}

// Ribbon holds the tabs the add-in contributes.
type Ribbon struct {
	Tabs []Tab `xml:"tabs>tab"`
}

type Tab struct {
	ID     string  `xml:"id,attr"`
	Label  string  `xml:"label,attr"`
	Groups []Group `xml:"group"`
}

type Group struct {
	ID      string   `xml:"id,attr"`
	Label   string   `xml:"label,attr"`
	Buttons []Button `xml:"button"`
}

type Button struct {
	ID        string `xml:"id,attr"`
	Label     string `xml:"label,attr"`
	Screentip string `xml:"screentip,attr,omitempty"`
	Supertip  string `xml:"supertip,attr,omitempty"`
	Size      string `xml:"size,attr,omitempty"`
	ImageMso  string `xml:"imageMso,attr,omitempty"`
	OnAction  string `xml:"onAction,attr"`
}

// Options configures the descriptor.
type Options struct {
	Namespace  string
	TabID      string
	TabLabel   string
	GroupID    string
	GroupLabel string
	ButtonID   string
	Label      string
	Screentip  string
	Supertip   string
	Size       string
	ImageMso   string

	// OnAction is the name of the activation operation.
	OnAction string
}

// Default returns the options of the Obsidian export button.
func Default() Options {
	return Options{
		Namespace:  Namespace2009,
		TabID:      "tabExport",
		TabLabel:   "Export",
		GroupID:    "grpObsidian",
		GroupLabel: "Obsidian",
		ButtonID:   "btnExportToObsidian",
		Label:      "Export to Obsidian",
		Screentip:  "Export current page to Obsidian",
		Supertip:   "Converts the currently focused OneNote page to a Markdown note and saves it to your Obsidian vault.",
		Size:       SizeLarge,
		OnAction:   "ExportToObsidian",
	}
}

// Document returns the descriptor model for the options.
func (o Options) Document() *CustomUI {
	return &CustomUI{
		XMLName: xml.Name{Space: o.Namespace, Local: RootElement},
		Ribbon: Ribbon{
			Tabs: []Tab{{
				ID:    o.TabID,
				Label: o.TabLabel,
				Groups: []Group{{
					ID:    o.GroupID,
					Label: o.GroupLabel,
					Buttons: []Button{{
						ID:        o.ButtonID,
						Label:     o.Label,
						Screentip: o.Screentip,
						Supertip:  o.Supertip,
						Size:      o.Size,
						ImageMso:  o.ImageMso,
						OnAction:  o.OnAction,
					}},
				}},
			}},
		},
	}
}

// Builder renders the descriptor.
type Builder struct {
	opts Options
}

// NewBuilder renders the descriptor once, parses the text back and checks
// it structurally. The onAction cross-reference is checked separately with
// Validate, since only the caller knows which operations are exposed.
func NewBuilder(opts Options) (*Builder, error) {
	b := &Builder{opts: opts}
	text, err := b.Build("")
	if err != nil {
		return nil, err
	}
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc, nil); err != nil {
		return nil, err
	}
	return b, nil
}

// Options returns the builder's options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build returns the descriptor text. ribbonID identifies the host ribbon
// being built; the add-in contributes the same descriptor to every ribbon,
// so it does not affect the output. Build is deterministic.
func (b *Builder) Build(ribbonID string) (string, error) {
	out, err := xml.Marshal(b.opts.Document())
	if err != nil {
		return "", fmt.Errorf("failed to marshal ribbon descriptor: %w", err)
	}
	return string(out), nil
}

// Parse decodes descriptor text.
func Parse(text string) (*CustomUI, error) {
	var doc CustomUI
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ribbon descriptor: %w", err)
	}
	return &doc, nil
}
