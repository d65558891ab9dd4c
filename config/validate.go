package config

import (
	"regexp"

	ole "github.com/go-ole/go-ole"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zero-day-ai/notebridge/fault"
	"github.com/zero-day-ai/notebridge/ribbon"
)

var progIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z0-9_]+){1,2}$`)

// Validate checks the configuration. The returned error is a configuration
// fault wrapping ozzo-validation's per-field errors.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Identity),
		validation.Field(&c.Launch),
		validation.Field(&c.Diagnostics),
		validation.Field(&c.Ribbon),
		validation.Field(&c.Log),
	)
	if err != nil {
		return fault.Configuration("config.Validate", err)
	}
	return nil
}

// Validate checks the identity fields.
func (i Identity) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.CLSID, validation.Required, validation.By(isGUID)),
		validation.Field(&i.ProgID, validation.Required, validation.Match(progIDPattern)),
	)
}

// Validate checks the launch fields.
func (l Launch) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Target, validation.Required),
		validation.Field(&l.Window, validation.In("normal", "hidden", "minimized")),
	)
}

// Validate checks the diagnostics fields.
func (d Diagnostics) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.LogPath, validation.When(!d.Disabled, validation.Required)),
	)
}

// Validate checks the ribbon fields.
func (r Ribbon) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Namespace, validation.In(ribbon.Namespace2006, ribbon.Namespace2009)),
		validation.Field(&r.Size, validation.In(ribbon.SizeNormal, ribbon.SizeLarge)),
	)
}

// Validate checks the log fields.
func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("text", "json")),
	)
}

func isGUID(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if ole.NewGUID(s) == nil {
		return validation.NewError("notebridge.config.clsid_invalid", "must be a GUID")
	}
	return nil
}
