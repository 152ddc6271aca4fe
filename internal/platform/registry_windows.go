//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const uninstallKeyBase = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\`

// RegisterApp creates the uninstall registry entry the Windows installed
// applications listing reads. The registryKey should be unique to the
// application (e.g., "Publisher.Product").
func RegisterApp(registryKey string, info AppInfo) error {
	keyPath := uninstallKeyBase + registryKey
	key, _, err := registry.CreateKey(registry.LOCAL_MACHINE, keyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create registry key: %w", err)
	}
	defer key.Close()

	stringValues := map[string]string{
		"DisplayName":     info.DisplayName,
		"DisplayVersion":  info.DisplayVersion,
		"Publisher":       info.Publisher,
		"InstallLocation": info.InstallLocation,
		"UninstallString": info.UninstallString,
	}
	if info.DisplayIcon != "" {
		stringValues["DisplayIcon"] = info.DisplayIcon
	} else if info.UninstallString != "" {
		stringValues["DisplayIcon"] = info.UninstallString
	}
	for name, value := range stringValues {
		if err := key.SetStringValue(name, value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if info.NoModify {
		if err := key.SetDWordValue("NoModify", 1); err != nil {
			return fmt.Errorf("set NoModify: %w", err)
		}
	}
	if info.NoRepair {
		if err := key.SetDWordValue("NoRepair", 1); err != nil {
			return fmt.Errorf("set NoRepair: %w", err)
		}
	}
	return nil
}

// UnregisterApp removes the uninstall registry entry. A missing entry is not
// an error.
func UnregisterApp(registryKey string) error {
	err := registry.DeleteKey(registry.LOCAL_MACHINE, uninstallKeyBase+registryKey)
	if err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("delete registry key: %w", err)
	}
	return nil
}

// WriteAppKey records the install location under the publisher/application
// namespace (HKLM\SOFTWARE\<Publisher>\<App>).
func WriteAppKey(publisher, app, installDir string) error {
	keyPath := fmt.Sprintf(`SOFTWARE\%s\%s`, publisher, app)
	key, _, err := registry.CreateKey(registry.LOCAL_MACHINE, keyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create app key: %w", err)
	}
	defer key.Close()
	if err := key.SetStringValue("InstallDir", installDir); err != nil {
		return fmt.Errorf("set InstallDir: %w", err)
	}
	return nil
}

// DeleteAppKey removes the publisher/application key. Missing keys are not
// an error.
func DeleteAppKey(publisher, app string) error {
	keyPath := fmt.Sprintf(`SOFTWARE\%s\%s`, publisher, app)
	if err := registry.DeleteKey(registry.LOCAL_MACHINE, keyPath); err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("delete app key: %w", err)
	}
	// Remove the publisher key too if it is now empty.
	_ = registry.DeleteKey(registry.LOCAL_MACHINE, `SOFTWARE\`+publisher)
	return nil
}
