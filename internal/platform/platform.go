// Package platform wraps the OS-specific surface of install and uninstall:
// shortcuts, the system registration area, and deferred deletion. Non-Windows
// builds report ErrUnsupported for the Windows-only pieces so callers can
// skip them.
package platform

import "errors"

// ErrUnsupported indicates the operation has no meaning on this OS.
var ErrUnsupported = errors.New("not supported on this platform")

// Shortcut describes a shortcut to the installed application.
type Shortcut struct {
	Target      string // path to the target executable
	Arguments   string // command-line arguments (optional)
	WorkingDir  string // working directory (optional, defaults to target's directory)
	Description string // tooltip description (optional)
	IconPath    string // path to icon file (optional, defaults to target)
}

// AppInfo describes an installed application for the OS uninstall listing
// (Add/Remove Programs on Windows).
type AppInfo struct {
	DisplayName     string
	DisplayVersion  string
	Publisher       string
	InstallLocation string
	UninstallString string
	DisplayIcon     string
	NoModify        bool
	NoRepair        bool
}
