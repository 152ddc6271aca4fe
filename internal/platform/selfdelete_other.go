//go:build !windows

package platform

import "os"

// RemoveDir deletes dir recursively. Unix allows removing the directory of
// a running executable directly.
func RemoveDir(dir string) error {
	return os.RemoveAll(dir)
}
