//go:build windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// CreateShortcut creates a Windows shortcut (.lnk file) at the specified path.
func CreateShortcut(lnkPath string, s Shortcut) error {
	if _, err := os.Stat(s.Target); err != nil {
		return fmt.Errorf("target not found: %s", s.Target)
	}

	// COM is thread-bound
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); ok {
			code := oleErr.Code()
			if code != 0 && code != 1 { // S_OK=0, S_FALSE=1
				return fmt.Errorf("COM initialization failed: %v", err)
			}
		}
	}
	defer ole.CoUninitialize()

	return createShortcutInternal(lnkPath, s)
}

// DeleteShortcut removes a shortcut file. A missing shortcut is not an error.
func DeleteShortcut(lnkPath string) error {
	err := os.Remove(lnkPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CreateDesktopShortcut creates a shortcut on the current user's desktop.
func CreateDesktopShortcut(name string, s Shortcut) error {
	desktop, err := DesktopPath()
	if err != nil {
		return fmt.Errorf("get desktop path: %w", err)
	}
	return CreateShortcut(filepath.Join(desktop, name+".lnk"), s)
}

// CreateStartMenuShortcut creates a shortcut in the current user's Start
// Menu. The folder parameter specifies a subfolder; use "" for the root.
func CreateStartMenuShortcut(folder, name string, s Shortcut) error {
	startMenu, err := StartMenuPath()
	if err != nil {
		return fmt.Errorf("get start menu path: %w", err)
	}
	lnkPath := filepath.Join(startMenu, name+".lnk")
	if folder != "" {
		lnkPath = filepath.Join(startMenu, folder, name+".lnk")
	}
	return CreateShortcut(lnkPath, s)
}

// DeleteDesktopShortcut removes a shortcut from the current user's desktop.
func DeleteDesktopShortcut(name string) error {
	desktop, err := DesktopPath()
	if err != nil {
		return err
	}
	return DeleteShortcut(filepath.Join(desktop, name+".lnk"))
}

// DeleteStartMenuShortcut removes a shortcut from the current user's Start
// Menu and removes the containing folder if it becomes empty.
func DeleteStartMenuShortcut(folder, name string) error {
	startMenu, err := StartMenuPath()
	if err != nil {
		return err
	}
	lnkPath := filepath.Join(startMenu, name+".lnk")
	if folder != "" {
		lnkPath = filepath.Join(startMenu, folder, name+".lnk")
	}
	if err := DeleteShortcut(lnkPath); err != nil {
		return err
	}
	if folder != "" {
		_ = os.Remove(filepath.Join(startMenu, folder))
	}
	return nil
}

// createShortcutInternal creates a shortcut using COM. Assumes COM is
// already initialized.
func createShortcutInternal(lnkPath string, s Shortcut) error {
	parentDir := filepath.Dir(lnkPath)
	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", parentDir, err)
	}
	if _, err := os.Stat(lnkPath); err == nil {
		_ = os.Remove(lnkPath)
	}

	oleShellObject, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("cannot create WScript.Shell object: %v", err)
	}
	defer oleShellObject.Release()

	wshell, err := oleShellObject.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("cannot get shell interface: %v", err)
	}
	defer wshell.Release()

	shortcutVariant, err := oleutil.CallMethod(wshell, "CreateShortcut", lnkPath)
	if err != nil {
		return fmt.Errorf("cannot create shortcut object: %v", err)
	}
	shortcut := shortcutVariant.ToIDispatch()
	defer shortcut.Release()

	if _, err := oleutil.PutProperty(shortcut, "TargetPath", s.Target); err != nil {
		return fmt.Errorf("cannot set target path: %v", err)
	}
	if s.Arguments != "" {
		if _, err := oleutil.PutProperty(shortcut, "Arguments", s.Arguments); err != nil {
			return fmt.Errorf("cannot set arguments: %v", err)
		}
	}
	workingDir := s.WorkingDir
	if workingDir == "" {
		workingDir = filepath.Dir(s.Target)
	}
	if _, err := oleutil.PutProperty(shortcut, "WorkingDirectory", workingDir); err != nil {
		return fmt.Errorf("cannot set working directory: %v", err)
	}
	if s.Description != "" {
		if _, err := oleutil.PutProperty(shortcut, "Description", s.Description); err != nil {
			return fmt.Errorf("cannot set description: %v", err)
		}
	}
	iconPath := s.IconPath
	if iconPath == "" {
		iconPath = s.Target
	}
	if _, err := oleutil.PutProperty(shortcut, "IconLocation", iconPath); err != nil {
		return fmt.Errorf("cannot set icon: %v", err)
	}

	if _, err := oleutil.CallMethod(shortcut, "Save"); err != nil {
		return fmt.Errorf("cannot save shortcut: %v", err)
	}
	return nil
}
