package install

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/accountmgr/amkit/internal/config"
	"github.com/accountmgr/amkit/internal/db"
	"github.com/accountmgr/amkit/internal/store"
)

func testRepo(t *testing.T) *store.Repository {
	t.Helper()
	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.NewRepository(conn)
}

func testConfig(outputDir string) *config.Config {
	return &config.Config{
		App: config.App{
			Name:      "AccountManager",
			Publisher: "AccountManager Project",
			Version:   "1.0.0",
			MainExe:   "AccountManager.exe",
			Icon:      "resources/app.ico",
		},
		Build: config.Build{Command: "true", OutputDir: outputDir},
	}
}

func makeBuildOutput(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "dist", "AccountManager")
	if err := os.MkdirAll(filepath.Join(dir, "resources"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "AccountManager.exe"), []byte("binstuff"), 0o755); err != nil {
		t.Fatalf("write exe: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "resources", "app.ico"), []byte("icon"), 0o644); err != nil {
		t.Fatalf("write icon: %v", err)
	}
	return dir
}

func TestPlanRequiresBuildOutput(t *testing.T) {
	inst := &Installer{Cfg: testConfig(filepath.Join(t.TempDir(), "missing")), Repo: testRepo(t)}
	if _, _, err := inst.Plan(Options{}); err == nil {
		t.Fatalf("expected error for missing build output")
	}
}

func TestExecuteInstallsTree(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AMKIT_TEST_INSTALL_ROOT", root)
	src := makeBuildOutput(t)
	repo := testRepo(t)
	var out bytes.Buffer
	inst := &Installer{Cfg: testConfig(src), Repo: repo, Out: &out}

	if err := inst.Execute(Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	target := filepath.Join(root, "AccountManager")
	for _, rel := range []string{"AccountManager.exe", filepath.Join("resources", "app.ico"), UninstallerName()} {
		if _, err := os.Stat(filepath.Join(target, rel)); err != nil {
			t.Fatalf("expected installed file %s: %v", rel, err)
		}
	}

	// No staging leftovers next to the install
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".amkit-stage-") || strings.HasPrefix(e.Name(), ".amkit-prev-") {
			t.Fatalf("working directory left behind: %s", e.Name())
		}
	}

	rec, err := repo.GetInstallRecord("AccountManager")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec == nil || rec.Version != "1.0.0" || rec.InstallDir != target {
		t.Fatalf("unexpected install record: %+v", rec)
	}
}

func TestReinstallOverwritesExisting(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AMKIT_TEST_INSTALL_ROOT", root)
	src := makeBuildOutput(t)
	repo := testRepo(t)
	inst := &Installer{Cfg: testConfig(src), Repo: repo, Out: &bytes.Buffer{}}

	if err := inst.Execute(Options{}); err != nil {
		t.Fatalf("first install: %v", err)
	}
	// A stale file from the previous version must not survive reinstall
	target := filepath.Join(root, "AccountManager")
	stale := filepath.Join(target, "stale.dll")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	inst.Cfg.App.Version = "1.1.0"
	if err := inst.Execute(Options{}); err != nil {
		t.Fatalf("reinstall: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale file removed by reinstall")
	}
	rec, err := repo.GetInstallRecord("AccountManager")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Version != "1.1.0" {
		t.Fatalf("expected record updated to 1.1.0, got %s", rec.Version)
	}
}

func TestInstallThenUninstallRestoresState(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AMKIT_TEST_INSTALL_ROOT", root)
	src := makeBuildOutput(t)
	repo := testRepo(t)
	inst := &Installer{Cfg: testConfig(src), Repo: repo, Out: &bytes.Buffer{}}

	if err := inst.Execute(Options{}); err != nil {
		t.Fatalf("install: %v", err)
	}
	var out bytes.Buffer
	if err := Uninstall(repo, &out, UninstallOptions{AppName: "AccountManager"}); err != nil {
		t.Fatalf("uninstall: %v", err)
	}

	target := filepath.Join(root, "AccountManager")
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected install dir removed")
	}
	rec, err := repo.GetInstallRecord("AccountManager")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected install record removed, got %+v", rec)
	}
}

func TestUninstallTwiceIsNoOp(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AMKIT_TEST_INSTALL_ROOT", root)
	src := makeBuildOutput(t)
	repo := testRepo(t)
	inst := &Installer{Cfg: testConfig(src), Repo: repo, Out: &bytes.Buffer{}}

	if err := inst.Execute(Options{}); err != nil {
		t.Fatalf("install: %v", err)
	}
	if err := Uninstall(repo, &bytes.Buffer{}, UninstallOptions{AppName: "AccountManager"}); err != nil {
		t.Fatalf("first uninstall: %v", err)
	}
	var out bytes.Buffer
	if err := Uninstall(repo, &out, UninstallOptions{AppName: "AccountManager"}); err != nil {
		t.Fatalf("second uninstall must not error: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to do") {
		t.Fatalf("expected nothing-to-do message, got: %s", out.String())
	}
}

func TestUninstallWithoutInstallIsNoOp(t *testing.T) {
	t.Setenv("AMKIT_TEST_INSTALL_ROOT", t.TempDir())
	repo := testRepo(t)
	var out bytes.Buffer
	if err := Uninstall(repo, &out, UninstallOptions{AppName: "NeverInstalled"}); err != nil {
		t.Fatalf("uninstall of missing app must not error: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to do") {
		t.Fatalf("expected nothing-to-do message, got: %s", out.String())
	}
}

func TestDryRunPerformsNoChanges(t *testing.T) {
	root := t.TempDir()
	t.Setenv("AMKIT_TEST_INSTALL_ROOT", root)
	src := makeBuildOutput(t)
	var out bytes.Buffer
	inst := &Installer{Cfg: testConfig(src), Repo: testRepo(t), Out: &out}

	if err := inst.Execute(Options{DryRun: true}); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "AccountManager")); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the install dir")
	}
	if out.Len() == 0 {
		t.Fatalf("dry run must print the plan")
	}
}

func TestCommitStagingReplacesTarget(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "app")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir target: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "old.txt"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write old: %v", err)
	}

	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "new.txt"), []byte("new"), 0o644); err != nil {
		t.Fatalf("write new: %v", err)
	}
	staging, err := stageTree(src, target)
	if err != nil {
		t.Fatalf("stageTree: %v", err)
	}
	if err := commitStaging(staging, target); err != nil {
		t.Fatalf("commitStaging: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "new.txt")); err != nil {
		t.Fatalf("expected new file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "old.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected old file gone")
	}
	if _, err := os.Stat(filepath.Join(parent, ".amkit-prev-app")); !os.IsNotExist(err) {
		t.Fatalf("expected set-aside tree removed after commit")
	}
}

func TestCommitStagingKeepsPreviousOnFailure(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "app")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir target: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "old.txt"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write old: %v", err)
	}

	// A staging path that does not exist makes the commit rename fail.
	if err := commitStaging(filepath.Join(parent, "no-such-staging"), target); err == nil {
		t.Fatalf("expected commit failure")
	}
	if _, err := os.Stat(filepath.Join(target, "old.txt")); err != nil {
		t.Fatalf("previous install must survive a failed commit: %v", err)
	}
}
