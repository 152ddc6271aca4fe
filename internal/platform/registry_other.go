//go:build !windows

package platform

// RegisterApp is Windows-only. The cross-platform install record in the
// state store covers other systems.
func RegisterApp(registryKey string, info AppInfo) error {
	return ErrUnsupported
}

// UnregisterApp is Windows-only.
func UnregisterApp(registryKey string) error {
	return ErrUnsupported
}

// WriteAppKey is Windows-only.
func WriteAppKey(publisher, app, installDir string) error {
	return ErrUnsupported
}

// DeleteAppKey is Windows-only.
func DeleteAppKey(publisher, app string) error {
	return ErrUnsupported
}
