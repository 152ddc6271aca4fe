package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validTOML = `
[app]
name = "AccountManager"
publisher = "AccountManager Project"
version = "1.0.0"
main_exe = "AccountManager.exe"
icon = "resources/app.ico"

[build]
command = "pyinstaller --onedir run_app.py"
output_dir = "dist/AccountManager"

[package]
command = "makensis installer.nsi"
installer = "dist/AccountManagerSetup.exe"

[publish]
assets = ["dist/AccountManager/AccountManager.exe"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "release.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadValid(t *testing.T) {
	c, err := Load(writeConfig(t, validTOML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Name != "AccountManager" {
		t.Fatalf("unexpected app name: %s", c.App.Name)
	}
	if c.App.Version != "1.0.0" {
		t.Fatalf("unexpected version: %s", c.App.Version)
	}
	// Defaults
	if c.Publish.Remote != "origin" {
		t.Fatalf("expected default remote origin, got %s", c.Publish.Remote)
	}
	if c.Publish.TagPrefix != "v" {
		t.Fatalf("expected default tag prefix v, got %s", c.Publish.TagPrefix)
	}
}

func TestTagNameMatchesVersionExactly(t *testing.T) {
	for _, v := range []string{"0.0.1", "1.0.0", "2.10.3", "10.20.30"} {
		c := &Config{
			App:     App{Name: "A", MainExe: "a.exe", Version: v},
			Build:   Build{Command: "x", OutputDir: "d"},
			Publish: Publish{TagPrefix: "v"},
		}
		if err := c.validate(); err != nil {
			t.Fatalf("validate %s: %v", v, err)
		}
		if got := c.TagName(); got != "v"+v {
			t.Fatalf("TagName for %s: got %s, want v%s", v, got, v)
		}
	}
}

func TestLoadMissingVersion(t *testing.T) {
	body := `
[app]
name = "AccountManager"
main_exe = "AccountManager.exe"
[build]
command = "x"
output_dir = "d"
`
	_, err := Load(writeConfig(t, body))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if ce.Field != "app.version" {
		t.Fatalf("expected app.version field, got %s", ce.Field)
	}
}

func TestLoadMalformedVersion(t *testing.T) {
	for _, v := range []string{"not-a-version", "1.0", "v1.0.0", "1.0.0-rc1"} {
		body := `
[app]
name = "AccountManager"
main_exe = "AccountManager.exe"
version = "` + v + `"
[build]
command = "x"
output_dir = "d"
`
		_, err := Load(writeConfig(t, body))
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("version %q: expected ConfigError, got %v", v, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
