// Package config provides loading, defaulting and validation of the add-in's
// configuration. Files are YAML or TOML, chosen by extension; environment
// variables override individual settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default identity of the add-in as registered with the host.
const (
	DefaultCLSID        = "{C1E7A840-D4B5-4E8B-B63F-0A4E7C3A9E1F}"
	DefaultProgID       = "OneNoteExportAddin.Connect"
	DefaultFriendlyName = "OneNote Obsidian Export"
	DefaultDescription  = "Exports the current OneNote page to an Obsidian vault."

	DefaultTargetName = "run_onenote_export.bat"
	DefaultLogName    = "onenote_addin_log.txt"
)

// Environment variables that override file settings.
const (
	EnvTarget       = "NOTEBRIDGE_TARGET"
	EnvLog          = "NOTEBRIDGE_LOG"
	EnvDiagDisabled = "NOTEBRIDGE_DIAG_DISABLED"
	EnvLogLevel     = "NOTEBRIDGE_LOG_LEVEL"
)

// ErrNoConfig is returned when a directory holds no configuration file.
var ErrNoConfig = errors.New("no configuration file found")

// FileNames are the configuration file names searched by LoadFromDir, in
// order.
var FileNames = []string{"notebridge.yaml", "notebridge.yml", "notebridge.toml"}

// Config is the add-in configuration.
type Config struct {
	Identity    Identity    `yaml:"identity" toml:"identity"`
	Launch      Launch      `yaml:"launch" toml:"launch"`
	Diagnostics Diagnostics `yaml:"diagnostics" toml:"diagnostics"`
	Ribbon      Ribbon      `yaml:"ribbon" toml:"ribbon"`
	Notify      Notify      `yaml:"notify" toml:"notify"`
	Log         Log         `yaml:"log" toml:"log"`
}

// Identity is how the host knows the add-in.
type Identity struct {
	CLSID        string `yaml:"clsid" toml:"clsid"`
	ProgID       string `yaml:"progid" toml:"progid"`
	FriendlyName string `yaml:"friendly_name,omitempty" toml:"friendly_name,omitempty"`
	Description  string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// Launch configures the external exporter started on activation.
type Launch struct {
	// Target is the script or executable to start (required).
	Target string `yaml:"target" toml:"target"`

	Args    []string `yaml:"args,omitempty" toml:"args,omitempty"`
	WorkDir string   `yaml:"work_dir,omitempty" toml:"work_dir,omitempty"`

	// Window is the initial window state: normal, hidden or minimized.
	Window string `yaml:"window,omitempty" toml:"window,omitempty"`
}

// Diagnostics configures the diagnostic side-channel.
type Diagnostics struct {
	LogPath  string `yaml:"log_path" toml:"log_path"`
	Disabled bool   `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// Ribbon configures the UI descriptor. Empty fields keep the built-in
// defaults.
type Ribbon struct {
	Namespace   string `yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	TabLabel    string `yaml:"tab_label,omitempty" toml:"tab_label,omitempty"`
	GroupLabel  string `yaml:"group_label,omitempty" toml:"group_label,omitempty"`
	ButtonLabel string `yaml:"button_label,omitempty" toml:"button_label,omitempty"`
	Screentip   string `yaml:"screentip,omitempty" toml:"screentip,omitempty"`
	Supertip    string `yaml:"supertip,omitempty" toml:"supertip,omitempty"`
	Size        string `yaml:"size,omitempty" toml:"size,omitempty"`
	ImageMso    string `yaml:"image_mso,omitempty" toml:"image_mso,omitempty"`
}

// Notify configures failure notifications.
type Notify struct {
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`
}

// Log configures the operational logger.
type Log struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level,omitempty" toml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
}

// Default returns the built-in configuration: the launch target and the
// diagnostic log live in the user's home directory.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return &Config{
		Identity: Identity{
			CLSID:        DefaultCLSID,
			ProgID:       DefaultProgID,
			FriendlyName: DefaultFriendlyName,
			Description:  DefaultDescription,
		},
		Launch: Launch{
			Target: filepath.Join(home, DefaultTargetName),
			Window: "normal",
		},
		Diagnostics: Diagnostics{
			LogPath: filepath.Join(home, DefaultLogName),
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file over the defaults and applies environment
// overrides. If path is a directory, the first of FileNames found in it is
// used.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range FileNames {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("%w: looked for %s in %s", ErrNoConfig, strings.Join(FileNames, ", "), path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := decode(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir searches for a configuration file starting from dir and
// walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		cfg, err := Load(absDir)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrNoConfig) {
			return nil, err
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("%w in %s or parent directories", ErrNoConfig, dir)
		}
		absDir = parent
	}
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// ApplyEnv overrides settings from environment variables read through
// lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTarget); ok && v != "" {
		c.Launch.Target = v
	}
	if v, ok := lookup(EnvLog); ok && v != "" {
		c.Diagnostics.LogPath = v
	}
	if v, ok := lookup(EnvDiagDisabled); ok && v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDiagDisabled, err)
		}
		c.Diagnostics.Disabled = disabled
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}
