// Package config loads release.toml, the single source of truth for the
// application name, publisher, and version used by both the installer and
// the release publisher.
package config

import (
	"fmt"
	"os"

	goversion "github.com/hashicorp/go-version"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "release.toml"

// ConfigError reports a missing or malformed release.toml value. The release
// pipeline fails fast on a ConfigError before touching git or the network.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// App describes the application being packaged.
type App struct {
	Name      string `toml:"name"`
	Publisher string `toml:"publisher"`
	Version   string `toml:"version"`
	MainExe   string `toml:"main_exe"`
	Icon      string `toml:"icon"`
}

// Build describes the external packager invocation.
type Build struct {
	Command   string `toml:"command"`
	OutputDir string `toml:"output_dir"`
}

// Package describes the external installer-generation invocation.
type Package struct {
	Command   string `toml:"command"`
	Installer string `toml:"installer"`
}

// Publish describes tag and release settings.
type Publish struct {
	Remote    string   `toml:"remote"`
	TagPrefix string   `toml:"tag_prefix"`
	Repo      string   `toml:"repo"`
	Assets    []string `toml:"assets"`
}

// Config is the parsed release.toml.
type Config struct {
	App     App     `toml:"app"`
	Build   Build   `toml:"build"`
	Package Package `toml:"package"`
	Publish Publish `toml:"publish"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var c Config
	if err := toml.Unmarshal(b, &c); err != nil {
		return nil, &ConfigError{Field: path, Reason: err.Error()}
	}
	if c.Publish.Remote == "" {
		c.Publish.Remote = "origin"
	}
	if c.Publish.TagPrefix == "" {
		c.Publish.TagPrefix = "v"
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.App.Name == "" {
		return &ConfigError{Field: "app.name", Reason: "must not be empty"}
	}
	if c.App.MainExe == "" {
		return &ConfigError{Field: "app.main_exe", Reason: "must not be empty"}
	}
	if c.App.Version == "" {
		return &ConfigError{Field: "app.version", Reason: "must not be empty"}
	}
	v, err := goversion.NewSemver(c.App.Version)
	if err != nil {
		return &ConfigError{Field: "app.version", Reason: fmt.Sprintf("%q is not a valid version: %v", c.App.Version, err)}
	}
	// Keep the canonical MAJOR.MINOR.PATCH form; the tag must reproduce the
	// declared string exactly, so reject forms the tag would not round-trip.
	if v.Core().String() != c.App.Version {
		return &ConfigError{Field: "app.version", Reason: fmt.Sprintf("%q must be plain MAJOR.MINOR.PATCH", c.App.Version)}
	}
	if c.Build.Command == "" {
		return &ConfigError{Field: "build.command", Reason: "must not be empty"}
	}
	if c.Build.OutputDir == "" {
		return &ConfigError{Field: "build.output_dir", Reason: "must not be empty"}
	}
	return nil
}

// TagName returns the release tag for the declared version, e.g. "v1.0.0".
func (c *Config) TagName() string {
	return c.Publish.TagPrefix + c.App.Version
}
