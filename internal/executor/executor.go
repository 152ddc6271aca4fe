// Package executor provides external command execution functionality.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// ErrToolNotFound indicates a required external tool is not on PATH.
var ErrToolNotFound = errors.New("tool not found")

// ErrTimeout indicates an external command exceeded its time budget. It is a
// distinct failure from a non-zero exit.
var ErrTimeout = errors.New("command timed out")

// Runner is an interface for executing external commands. It allows tests to
// inject fake implementations without running real processes.
type Runner interface {
	// Run executes name with args in cwd, streaming output to the
	// configured writers.
	Run(ctx context.Context, cwd string, name string, args ...string) error
	// Output executes name with args in cwd and returns trimmed stdout.
	Output(ctx context.Context, cwd string, name string, args ...string) (string, error)
}

// Executor runs external commands with a per-invocation timeout.
type Executor struct {
	DryRun  bool
	Timeout time.Duration // zero means no timeout
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns a Runner backed by the real Executor implementation.
func New(dry bool, timeout time.Duration) Runner {
	return &Executor{DryRun: dry, Timeout: timeout, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Split parses a configured command line into a program name and arguments.
func Split(command string) (string, []string, error) {
	words, err := shellquote.Split(command)
	if err != nil {
		return "", nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("parse command: empty command line")
	}
	return words[0], words[1:], nil
}

// LookTool verifies that name resolves on PATH.
func LookTool(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return nil
}

// Run implements Runner.
func (e *Executor) Run(ctx context.Context, cwd string, name string, args ...string) error {
	return e.run(ctx, cwd, e.stdout(), e.stderr(), name, args...)
}

// Output implements Runner.
func (e *Executor) Output(ctx context.Context, cwd string, name string, args ...string) (string, error) {
	var buf bytes.Buffer
	if err := e.run(ctx, cwd, &buf, e.stderr(), name, args...); err != nil {
		return strings.TrimSpace(buf.String()), err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (e *Executor) run(ctx context.Context, cwd string, stdout, stderr io.Writer, name string, args ...string) error {
	if e.DryRun {
		fmt.Fprintf(e.stdout(), "dry-run: %s %s\n", name, strings.Join(args, " "))
		return nil
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = cwd
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	// A deadline kill surfaces as a generic exec error; report it as the
	// distinct timeout failure instead.
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrTimeout, name, e.Timeout)
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (e *Executor) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *Executor) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}
