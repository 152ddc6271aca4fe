// Package build drives the external packager and installer-generation tools.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/accountmgr/amkit/internal/config"
	"github.com/accountmgr/amkit/internal/executor"
)

// ErrBuildFailed indicates the packager or installer tool did not produce
// the expected artifact.
var ErrBuildFailed = errors.New("build failed")

// Builder runs the configured build and package commands.
type Builder struct {
	Cfg    *config.Config
	Runner executor.Runner
	DryRun bool
	Out    io.Writer
}

func (b *Builder) out() io.Writer {
	if b.Out != nil {
		return b.Out
	}
	return os.Stdout
}

// Build runs the configured packager command and verifies the expected
// output tree exists.
func (b *Builder) Build(ctx context.Context) error {
	name, args, err := executor.Split(b.Cfg.Build.Command)
	if err != nil {
		return &config.ConfigError{Field: "build.command", Reason: err.Error()}
	}
	fmt.Fprintf(b.out(), "Building %s %s...\n", b.Cfg.App.Name, b.Cfg.App.Version)
	if err := b.Runner.Run(ctx, "", name, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrBuildFailed, err)
	}
	if b.DryRun {
		return nil
	}
	mainExe := filepath.Join(b.Cfg.Build.OutputDir, b.Cfg.App.MainExe)
	if _, err := os.Stat(mainExe); err != nil {
		return fmt.Errorf("%w: expected output %s missing: %w", ErrBuildFailed, mainExe, err)
	}
	return nil
}

// Package runs the configured installer-generation command and verifies the
// installer artifact exists.
func (b *Builder) Package(ctx context.Context) error {
	if b.Cfg.Package.Command == "" {
		return &config.ConfigError{Field: "package.command", Reason: "must not be empty"}
	}
	name, args, err := executor.Split(b.Cfg.Package.Command)
	if err != nil {
		return &config.ConfigError{Field: "package.command", Reason: err.Error()}
	}
	fmt.Fprintf(b.out(), "Building installer for %s %s...\n", b.Cfg.App.Name, b.Cfg.App.Version)
	if err := b.Runner.Run(ctx, "", name, args...); err != nil {
		return fmt.Errorf("%w: installer tool: %w", ErrBuildFailed, err)
	}
	if b.DryRun {
		return nil
	}
	if b.Cfg.Package.Installer != "" {
		if _, err := os.Stat(b.Cfg.Package.Installer); err != nil {
			return fmt.Errorf("%w: expected installer %s missing: %w", ErrBuildFailed, b.Cfg.Package.Installer, err)
		}
	}
	return nil
}
