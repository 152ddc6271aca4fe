package install

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/accountmgr/amkit/internal/pipeline"
	"github.com/accountmgr/amkit/internal/platform"
	"github.com/accountmgr/amkit/internal/store"
)

// UninstallOptions controls uninstall behavior.
type UninstallOptions struct {
	AppName   string
	Publisher string // used for registry cleanup when no install record exists
	DryRun    bool
}

// PlanUninstall returns the human-readable actions an uninstall would
// perform. A missing install record is not an error; the plan then falls
// back to the default install directory.
func PlanUninstall(repo *store.Repository, opts UninstallOptions) ([]string, error) {
	rec, err := repo.GetInstallRecord(opts.AppName)
	if err != nil {
		return nil, fmt.Errorf("load install record: %w", err)
	}
	dir := DefaultInstallDir(opts.AppName)
	if rec != nil {
		dir = rec.InstallDir
	}
	actions := []string{}
	if runtime.GOOS == "windows" {
		actions = append(actions,
			fmt.Sprintf("Remove desktop and start-menu shortcuts for %s", opts.AppName),
			fmt.Sprintf("Unregister %s from the installed applications listing", opts.AppName),
		)
	}
	actions = append(actions,
		fmt.Sprintf("Remove install directory %s", dir),
		fmt.Sprintf("Delete install record for %s", opts.AppName),
	)
	return actions, nil
}

// Uninstall removes shortcuts, the OS registration, the install directory,
// and the install record. Every step tolerates "already absent", so a repeat
// invocation is a no-op.
func Uninstall(repo *store.Repository, out io.Writer, opts UninstallOptions) error {
	if out == nil {
		out = os.Stdout
	}
	rec, err := repo.GetInstallRecord(opts.AppName)
	if err != nil {
		return fmt.Errorf("load install record: %w", err)
	}
	dir := DefaultInstallDir(opts.AppName)
	publisher := opts.Publisher
	if rec != nil {
		dir = rec.InstallDir
		publisher = rec.Publisher
	}

	if rec == nil {
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			fmt.Fprintf(out, "%s is not installed; nothing to do\n", opts.AppName)
			return nil
		}
	}

	if opts.DryRun {
		actions, err := PlanUninstall(repo, opts)
		if err != nil {
			return err
		}
		for _, a := range actions {
			fmt.Fprintf(out, "- %s\n", a)
		}
		return nil
	}

	steps := []pipeline.Step{
		{Name: "remove desktop shortcut", Action: func() pipeline.StepResult {
			err := platform.DeleteDesktopShortcut(opts.AppName)
			if err == platform.ErrUnsupported {
				return pipeline.Skipped("windows only")
			}
			if err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success("")
		}},
		{Name: "remove start menu shortcut", Action: func() pipeline.StepResult {
			err := platform.DeleteStartMenuShortcut(opts.AppName, opts.AppName)
			if err == platform.ErrUnsupported {
				return pipeline.Skipped("windows only")
			}
			if err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success("")
		}},
		{Name: "unregister application", Action: func() pipeline.StepResult {
			err := platform.UnregisterApp(opts.AppName)
			if err == platform.ErrUnsupported {
				return pipeline.Skipped("windows only")
			}
			if err != nil {
				return pipeline.Failed(err)
			}
			if publisher != "" {
				if err := platform.DeleteAppKey(publisher, opts.AppName); err != nil && err != platform.ErrUnsupported {
					return pipeline.Failed(err)
				}
			}
			return pipeline.Success("")
		}},
		{Name: "remove install directory", Action: func() pipeline.StepResult {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return pipeline.Skipped("already absent")
			}
			if err := platform.RemoveDir(dir); err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success(dir)
		}},
		pipeline.SimpleStep("delete install record", func() error {
			return repo.DeleteInstallRecord(opts.AppName)
		}),
	}
	return pipeline.Run(out, steps)
}
