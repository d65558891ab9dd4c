package ribbon

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/notebridge/fault"
)

func exposed(names ...string) func(string) bool {
	return func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

func TestBuild_Default(t *testing.T) {
	b, err := NewBuilder(Default())
	require.NoError(t, err)

	text, err := b.Build("Microsoft.OneNote.Notebook")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, `<customUI xmlns="`+Namespace2009+`">`))
	assert.Contains(t, text, `id="tabExport"`)
	assert.Contains(t, text, `label="Export to Obsidian"`)
	assert.Contains(t, text, `size="large"`)
	assert.Contains(t, text, `onAction="ExportToObsidian"`)
	assert.NotContains(t, text, "imageMso")

	doc, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, Namespace2009, doc.Namespace())
	require.Len(t, doc.Ribbon.Tabs, 1)
	require.Len(t, doc.Ribbon.Tabs[0].Groups, 1)
	require.Len(t, doc.Ribbon.Tabs[0].Groups[0].Buttons, 1)

	button := doc.Ribbon.Tabs[0].Groups[0].Buttons[0]
	assert.Equal(t, "btnExportToObsidian", button.ID)
	assert.Equal(t, "Export current page to Obsidian", button.Screentip)
	assert.Equal(t, "Converts the currently focused OneNote page to a Markdown note and saves it to your Obsidian vault.", button.Supertip)

	assert.NoError(t, Validate(doc, exposed("ExportToObsidian")))
}

func TestBuild_DeterministicAndIgnoresRibbonID(t *testing.T) {
	b, err := NewBuilder(Default())
	require.NoError(t, err)

	first, err := b.Build("Microsoft.OneNote.Notebook")
	require.NoError(t, err)
	for _, id := range []string{"", "Microsoft.OneNote.Notebook", "anything else", "<&>"} {
		text, err := b.Build(id)
		require.NoError(t, err)
		assert.Equal(t, first, text)
	}
}

func TestParse_ExportDescriptor(t *testing.T) {
	text := "<customUI xmlns='http://schemas.microsoft.com/office/2009/07/customui'>" +
		"  <ribbon>" +
		"    <tabs>" +
		"      <tab id='tabExport' label='Export'>" +
		"        <group id='grpObsidian' label='Obsidian'>" +
		"          <button id='btnExportToObsidian' label='Export to Obsidian' size='large' onAction='ExportToObsidian'/>" +
		"        </group>" +
		"      </tab>" +
		"    </tabs>" +
		"  </ribbon>" +
		"</customUI>"

	doc, err := Parse(text)
	require.NoError(t, err)
	assert.NoError(t, Validate(doc, exposed("ExportToObsidian")))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("<customUI")
	assert.Error(t, err)

	doc, err := Parse("<notCustomUI xmlns='" + Namespace2009 + "'/>")
	require.NoError(t, err)
	err = Validate(doc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `root element is "notCustomUI"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		resolve func(string) bool
		wantErr string
	}{
		{
			name:    "unknown namespace",
			mutate:  func(o *Options) { o.Namespace = "urn:other" },
			wantErr: "unknown namespace",
		},
		{
			name:    "2006 namespace accepted",
			mutate:  func(o *Options) { o.Namespace = Namespace2006 },
			wantErr: "",
		},
		{
			name:    "empty button id",
			mutate:  func(o *Options) { o.ButtonID = "" },
			wantErr: "button id is empty",
		},
		{
			name:    "duplicate ids",
			mutate:  func(o *Options) { o.GroupID = o.TabID },
			wantErr: "duplicate id",
		},
		{
			name:    "empty label",
			mutate:  func(o *Options) { o.TabLabel = "" },
			wantErr: "has no label",
		},
		{
			name:    "bad size",
			mutate:  func(o *Options) { o.Size = "huge" },
			wantErr: "unknown size",
		},
		{
			name:    "missing onAction",
			mutate:  func(o *Options) { o.OnAction = "" },
			wantErr: "has no onAction",
		},
		{
			name:    "onAction case differs",
			mutate:  func(o *Options) { o.OnAction = "exportToObsidian" },
			resolve: exposed("ExportToObsidian"),
			wantErr: "does not name an exposed operation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)
			err := Validate(opts.Document(), tt.resolve)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, fault.KindIntegration, fault.KindOf(err))
		})
	}
}

func TestValidate_Structure(t *testing.T) {
	doc := Default().Document()
	doc.Ribbon.Tabs[0].Groups[0].Buttons = append(doc.Ribbon.Tabs[0].Groups[0].Buttons, Button{ID: "b2", Label: "x", OnAction: "X"})
	err := Validate(doc, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDescriptor))
	assert.Contains(t, err.Error(), "expected exactly one button")

	doc.Ribbon.Tabs = nil
	err = Validate(doc, nil)
	assert.Contains(t, err.Error(), "expected exactly one tab, found 0")

	assert.Error(t, Validate(nil, nil))
}

func TestBuild_EmitsNamespace(t *testing.T) {
	for _, ns := range []string{Namespace2009, Namespace2006} {
		t.Run(ns, func(t *testing.T) {
			opts := Default()
			opts.Namespace = ns
			b, err := NewBuilder(opts)
			require.NoError(t, err)

			text, err := b.Build("AnyHost")
			require.NoError(t, err)
			assert.Contains(t, text, `xmlns="`+ns+`"`)

			doc, err := Parse(text)
			require.NoError(t, err)
			assert.Equal(t, ns, doc.Namespace())
			assert.Equal(t, RootElement, doc.XMLName.Local)
		})
	}
}

func TestNewBuilder_ChecksRenderedText(t *testing.T) {
	opts := Default()
	opts.Namespace = ""
	_, err := NewBuilder(opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), `unknown namespace ""`)
}

func TestNewBuilder_RejectsInvalid(t *testing.T) {
	opts := Default()
	opts.Size = "xl"
	_, err := NewBuilder(opts)
	assert.Error(t, err)
}
