//go:build !windows

package platform

// CreateShortcut is Windows-only.
func CreateShortcut(lnkPath string, s Shortcut) error {
	return ErrUnsupported
}

// DeleteShortcut is Windows-only.
func DeleteShortcut(lnkPath string) error {
	return ErrUnsupported
}

// CreateDesktopShortcut is Windows-only.
func CreateDesktopShortcut(name string, s Shortcut) error {
	return ErrUnsupported
}

// CreateStartMenuShortcut is Windows-only.
func CreateStartMenuShortcut(folder, name string, s Shortcut) error {
	return ErrUnsupported
}

// DeleteDesktopShortcut is Windows-only.
func DeleteDesktopShortcut(name string) error {
	return ErrUnsupported
}

// DeleteStartMenuShortcut is Windows-only.
func DeleteStartMenuShortcut(folder, name string) error {
	return ErrUnsupported
}
