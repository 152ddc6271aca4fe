// Package pipeline runs named steps strictly in sequence, stopping at the
// first failure. Install, uninstall, and publish are all expressed as step
// lists so progress reporting and failure naming stay uniform.
package pipeline

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// StepResult represents the outcome of a step execution.
type StepResult struct {
	// Skip indicates the step was skipped (already done, not needed).
	// A skipped step counts as successful.
	Skip bool

	// Info contains a success or informational message. For skipped steps
	// it explains why the step was skipped.
	Info string

	// Err contains the error if the step failed.
	Err error
}

// Success creates a successful StepResult with an optional info message.
func Success(info string) StepResult {
	return StepResult{Info: info}
}

// Skipped creates a StepResult indicating the step was skipped.
func Skipped(reason string) StepResult {
	return StepResult{Skip: true, Info: reason}
}

// Failed creates a StepResult with an error.
func Failed(err error) StepResult {
	return StepResult{Err: err}
}

// Step represents a named action executed as part of a pipeline.
type Step struct {
	Name   string
	Action func() StepResult
}

// SimpleStep creates a Step from a function that only returns an error.
func SimpleStep(name string, action func() error) Step {
	return Step{
		Name: name,
		Action: func() StepResult {
			if err := action(); err != nil {
				return Failed(err)
			}
			return Success("")
		},
	}
}

// Run executes steps in order, writing a progress line per step to out.
// It stops at the first failure and returns an error naming the failed step.
func Run(out io.Writer, steps []Step) error {
	for _, s := range steps {
		res := s.Action()
		switch {
		case res.Err != nil:
			fmt.Fprintf(out, "- %s: failed: %v\n", s.Name, res.Err)
			log.Error().Str("step", s.Name).Err(res.Err).Msg("step failed")
			return fmt.Errorf("step %q: %w", s.Name, res.Err)
		case res.Skip:
			fmt.Fprintf(out, "- %s: skipped (%s)\n", s.Name, res.Info)
			log.Debug().Str("step", s.Name).Str("reason", res.Info).Msg("step skipped")
		default:
			if res.Info != "" {
				fmt.Fprintf(out, "- %s: ok (%s)\n", s.Name, res.Info)
			} else {
				fmt.Fprintf(out, "- %s: ok\n", s.Name)
			}
			log.Debug().Str("step", s.Name).Msg("step done")
		}
	}
	return nil
}
