package config

import (
	"log/slog"
	"strings"

	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/ribbon"
)

// RibbonOptions returns the descriptor options: the defaults with the
// configured overrides applied.
func (c *Config) RibbonOptions() ribbon.Options {
	opts := ribbon.Default()
	r := c.Ribbon
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&opts.Namespace, r.Namespace)
	set(&opts.TabLabel, r.TabLabel)
	set(&opts.GroupLabel, r.GroupLabel)
	set(&opts.Label, r.ButtonLabel)
	set(&opts.Screentip, r.Screentip)
	set(&opts.Supertip, r.Supertip)
	set(&opts.Size, r.Size)
	set(&opts.ImageMso, r.ImageMso)
	return opts
}

// LaunchRequest returns the request issued on every activation.
func (c *Config) LaunchRequest() launch.Request {
	req := launch.Request{
		Target:  c.Launch.Target,
		Args:    append([]string(nil), c.Launch.Args...),
		WorkDir: c.Launch.WorkDir,
	}
	switch strings.ToLower(c.Launch.Window) {
	case "hidden":
		req.Window = launch.WindowHidden
	case "minimized":
		req.Window = launch.WindowMinimized
	default:
		req.Window = launch.WindowNormal
	}
	return req
}

// LogLevel returns the configured slog level, info when unset.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
