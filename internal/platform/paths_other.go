//go:build !windows

package platform

import (
	"os"
	"path/filepath"
)

// InstallRoot returns the default root directory for application installs.
func InstallRoot() string {
	return "/opt"
}

// DesktopPath returns the current user's desktop directory, if one exists.
func DesktopPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop"), nil
}

// StartMenuPath has no equivalent outside Windows.
func StartMenuPath() (string, error) {
	return "", ErrUnsupported
}
