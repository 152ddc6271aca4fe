package executor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSplit(t *testing.T) {
	name, args, err := Split(`makensis /DVERSION=1.0.0 "installer script.nsi"`)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if name != "makensis" {
		t.Fatalf("unexpected name: %s", name)
	}
	if len(args) != 2 || args[1] != "installer script.nsi" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSplitEmpty(t *testing.T) {
	if _, _, err := Split("   "); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestSplitUnbalancedQuote(t *testing.T) {
	if _, _, err := Split(`foo "bar`); err == nil {
		t.Fatalf("expected error for unbalanced quote")
	}
}

func TestLookToolMissing(t *testing.T) {
	err := LookTool("definitely-not-a-real-tool-amkit")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestRunMissingTool(t *testing.T) {
	e := &Executor{}
	err := e.Run(context.Background(), "", "definitely-not-a-real-tool-amkit")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestRunTimeoutIsDistinctFailure(t *testing.T) {
	if err := LookTool("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	e := &Executor{Timeout: 100 * time.Millisecond, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := e.Run(context.Background(), "", "sleep", "5")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestDryRunPrintsAndSkips(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{DryRun: true, Stdout: &out}
	if err := e.Run(context.Background(), "", "git", "tag", "-a", "v1.0.0"); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(out.String(), "dry-run: git tag -a v1.0.0") {
		t.Fatalf("expected dry-run line, got: %s", out.String())
	}
}

func TestDryRunOutputEmpty(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{DryRun: true, Stdout: &out}
	got, err := e.Output(context.Background(), "", "git", "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("dry run output: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output in dry run, got %q", got)
	}
}
