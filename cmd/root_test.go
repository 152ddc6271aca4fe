package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVersionCommandDoesNotCreateDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".amkit")); !os.IsNotExist(err) {
		t.Fatalf("version command must not create the data directory")
	}
}
