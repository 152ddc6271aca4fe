// Package install transitions the local machine between "not installed" and
// "installed" states for the packaged application.
package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/accountmgr/amkit/internal/config"
	"github.com/accountmgr/amkit/internal/pipeline"
	"github.com/accountmgr/amkit/internal/platform"
	"github.com/accountmgr/amkit/internal/store"
)

// Options controls install behavior.
type Options struct {
	SourceDir string // build output tree; defaults to the configured output dir
	Dir       string // custom target directory for the install
	DryRun    bool
}

// Installer performs install and uninstall operations for one application.
type Installer struct {
	Cfg  *config.Config
	Repo *store.Repository
	Out  io.Writer
}

func (i *Installer) out() io.Writer {
	if i.Out != nil {
		return i.Out
	}
	return os.Stdout
}

// DefaultInstallDir returns the default install directory for the app.
func DefaultInstallDir(appName string) string {
	if v := os.Getenv("AMKIT_TEST_INSTALL_ROOT"); v != "" {
		return filepath.Join(v, appName)
	}
	return filepath.Join(platform.InstallRoot(), appName)
}

// UninstallerName returns the file name of the uninstaller written into the
// install directory.
func UninstallerName() string {
	if runtime.GOOS == "windows" {
		return "uninstall.exe"
	}
	return "uninstall"
}

// Plan returns a list of human-readable actions that an install would
// perform and the resolved target directory.
func (i *Installer) Plan(opts Options) ([]string, string, error) {
	src := opts.SourceDir
	if src == "" {
		src = i.Cfg.Build.OutputDir
	}
	target := opts.Dir
	if target == "" {
		target = DefaultInstallDir(i.Cfg.App.Name)
	}
	mainExe := filepath.Join(src, i.Cfg.App.MainExe)
	if _, err := os.Stat(mainExe); err != nil {
		return nil, "", fmt.Errorf("build output incomplete: %s: %w", mainExe, err)
	}

	actions := []string{
		fmt.Sprintf("Stage %s into a temporary directory next to %s", src, target),
		fmt.Sprintf("Commit staged files to %s", target),
		fmt.Sprintf("Write uninstaller %s", filepath.Join(target, UninstallerName())),
	}
	if runtime.GOOS == "windows" {
		actions = append(actions,
			fmt.Sprintf("Create desktop and start-menu shortcuts for %s", i.Cfg.App.Name),
			fmt.Sprintf("Register %s in the installed applications listing", i.Cfg.App.Name),
		)
	}
	actions = append(actions, fmt.Sprintf("Record install of %s %s", i.Cfg.App.Name, i.Cfg.App.Version))
	return actions, target, nil
}

// Execute performs the install. Files are staged next to the final path and
// committed with a rename so a failure never leaves a partial tree at the
// target.
func (i *Installer) Execute(opts Options) error {
	actions, target, err := i.Plan(opts)
	if err != nil {
		return err
	}
	if opts.DryRun {
		for _, a := range actions {
			fmt.Fprintf(i.out(), "- %s\n", a)
		}
		return nil
	}

	src := opts.SourceDir
	if src == "" {
		src = i.Cfg.Build.OutputDir
	}
	app := i.Cfg.App
	mainExePath := filepath.Join(target, app.MainExe)
	iconPath := filepath.Join(target, filepath.FromSlash(app.Icon))
	var staging string

	steps := []pipeline.Step{
		pipeline.SimpleStep("stage files", func() error {
			staging, err = stageTree(src, target)
			return err
		}),
		pipeline.SimpleStep("commit install", func() error {
			return commitStaging(staging, target)
		}),
		pipeline.SimpleStep("write uninstaller", func() error {
			return writeUninstaller(target)
		}),
		{Name: "desktop shortcut", Action: func() pipeline.StepResult {
			err := platform.CreateDesktopShortcut(app.Name, platform.Shortcut{
				Target:      mainExePath,
				Description: app.Name,
				IconPath:    iconPath,
			})
			if err == platform.ErrUnsupported {
				return pipeline.Skipped("windows only")
			}
			if err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success("")
		}},
		{Name: "start menu shortcut", Action: func() pipeline.StepResult {
			err := platform.CreateStartMenuShortcut(app.Name, app.Name, platform.Shortcut{
				Target:      mainExePath,
				Description: app.Name,
				IconPath:    iconPath,
			})
			if err == platform.ErrUnsupported {
				return pipeline.Skipped("windows only")
			}
			if err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success("")
		}},
		{Name: "register application", Action: func() pipeline.StepResult {
			uninstall := fmt.Sprintf("\"%s\" uninstall --yes --app \"%s\"", filepath.Join(target, UninstallerName()), app.Name)
			err := platform.RegisterApp(app.Name, platform.AppInfo{
				DisplayName:     app.Name,
				DisplayVersion:  app.Version,
				Publisher:       app.Publisher,
				InstallLocation: target,
				UninstallString: uninstall,
				DisplayIcon:     iconPath,
				NoModify:        true,
				NoRepair:        true,
			})
			if err == platform.ErrUnsupported {
				return pipeline.Skipped("windows only")
			}
			if err != nil {
				return pipeline.Failed(err)
			}
			if err := platform.WriteAppKey(app.Publisher, app.Name, target); err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success("")
		}},
		pipeline.SimpleStep("record install", func() error {
			return i.Repo.SaveInstallRecord(app.Name, app.Publisher, app.Version, target)
		}),
	}

	defer func() {
		if staging != "" {
			_ = os.RemoveAll(staging)
		}
	}()
	return pipeline.Run(i.out(), steps)
}

// stageTree copies the source tree into a fresh staging directory created in
// the target's parent, so the commit rename stays on one filesystem.
func stageTree(src, target string) (string, error) {
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("create install parent: %w", err)
	}
	staging, err := os.MkdirTemp(parent, ".amkit-stage-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	if err := copyTree(src, staging); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}
	return staging, nil
}

// commitStaging exposes the staged tree at the final path. A previous
// install is renamed aside first and restored if the commit rename fails,
// so the target always holds either the old tree or the new one.
func commitStaging(staging, target string) error {
	prev := filepath.Join(filepath.Dir(target), ".amkit-prev-"+filepath.Base(target))
	replaced := false
	if _, err := os.Stat(target); err == nil {
		_ = os.RemoveAll(prev)
		if err := os.Rename(target, prev); err != nil {
			return fmt.Errorf("set aside previous install: %w", err)
		}
		replaced = true
	}
	if err := os.Rename(staging, target); err != nil {
		if replaced {
			_ = os.Rename(prev, target)
		}
		return fmt.Errorf("commit staged files: %w", err)
	}
	if replaced {
		if err := os.RemoveAll(prev); err != nil {
			return fmt.Errorf("remove previous install: %w", err)
		}
	}
	return nil
}

// writeUninstaller copies the running executable into the install directory
// so the OS registration can point at it.
func writeUninstaller(target string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("determine current executable: %w", err)
	}
	return copyFile(exe, filepath.Join(target, UninstallerName()), 0o755)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, out, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create dest: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
