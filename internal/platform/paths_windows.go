//go:build windows

package platform

import (
	"os"

	"golang.org/x/sys/windows"
)

// InstallRoot returns the default root directory for application installs.
// Example: C:\Program Files
func InstallRoot() string {
	path := os.Getenv("ProgramFiles")
	if path == "" {
		return `C:\Program Files`
	}
	return path
}

// DesktopPath returns the path to the current user's Desktop folder.
func DesktopPath() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Desktop, 0)
}

// StartMenuPath returns the path to the current user's Start Menu Programs
// folder.
func StartMenuPath() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Programs, 0)
}
