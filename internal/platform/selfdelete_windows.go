//go:build windows

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// RemoveDir deletes dir recursively. If the currently running executable
// lives inside dir, synchronous removal cannot succeed, so removal of the
// remainder is handed to a detached helper that retries until the executable
// is released.
func RemoveDir(dir string) error {
	exe, err := os.Executable()
	if err == nil {
		exeAbs, _ := filepath.Abs(exe)
		dirAbs, _ := filepath.Abs(dir)
		if exeAbs != "" && dirAbs != "" && strings.HasPrefix(strings.ToLower(exeAbs), strings.ToLower(dirAbs)+string(os.PathSeparator)) {
			return scheduleDirDelete(dirAbs)
		}
	}
	return os.RemoveAll(dir)
}

// scheduleDirDelete arranges for dir to be removed after the process exits,
// using a detached cmd.exe helper that retries until the directory goes away.
func scheduleDirDelete(dir string) error {
	script := fmt.Sprintf(
		`:loop & rd /s /q "%[1]s" 2>nul & if exist "%[1]s" ( timeout /t 1 /nobreak >nul & goto loop )`,
		dir,
	)
	cmd := exec.Command("cmd.exe", "/C", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start delete helper: %w", err)
	}
	return nil
}
