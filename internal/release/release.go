// Package release tags the repository for the declared version and publishes
// the build artifacts as a release. Republishing the same version replaces
// the existing tag instead of erroring.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/accountmgr/amkit/internal/config"
	"github.com/accountmgr/amkit/internal/executor"
	"github.com/accountmgr/amkit/internal/pipeline"
	"github.com/accountmgr/amkit/internal/store"
)

// ErrVersionControl indicates a tag create, delete, or push failure.
var ErrVersionControl = errors.New("version control failure")

// ErrPublish indicates a remote release or asset-upload failure.
var ErrPublish = errors.New("publish failure")

// Journaled step names. The publish journal records these per version and
// head commit so an interrupted publish can resume without repeating side
// effects.
const (
	StepTagReplace = "tag-replace"
	StepTagCreate  = "tag-create"
	StepTagPush    = "tag-push"
	StepRelease    = "release-create"
)

// Publisher runs the tag-and-publish half of the pipeline.
type Publisher struct {
	Cfg    *config.Config
	Runner executor.Runner
	Repo   *store.Repository
	Out    io.Writer
	Resume bool // skip steps already journaled for this version + commit
	DryRun bool // preview only: the journal is neither cleared nor written
}

func (p *Publisher) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Preflight verifies the required tools and release assets before any tag or
// network operation.
func (p *Publisher) Preflight() error {
	for _, asset := range p.Cfg.Publish.Assets {
		if _, err := os.Stat(asset); err != nil {
			return fmt.Errorf("release asset missing: %s: %w", asset, err)
		}
	}
	for _, tool := range []string{"git", "gh"} {
		if err := executor.LookTool(tool); err != nil {
			return err
		}
	}
	return nil
}

// Publish performs version-read → tag-create/overwrite → tag-push →
// release-create-with-assets. Each step is a hard precondition for the next.
func (p *Publisher) Publish(ctx context.Context) error {
	tag := p.Cfg.TagName()
	version := p.Cfg.App.Version

	head, err := p.Runner.Output(ctx, "", "git", "rev-parse", "HEAD")
	if err != nil {
		return fmt.Errorf("%w: resolve HEAD: %w", ErrVersionControl, err)
	}
	if !p.Resume && !p.DryRun {
		if err := p.Repo.ClearJournal(version); err != nil {
			return err
		}
	}

	fmt.Fprintf(p.out(), "Publishing %s %s as %s...\n", p.Cfg.App.Name, version, tag)
	steps := []pipeline.Step{
		p.journaled(version, head, StepTagReplace, func() error {
			return p.deleteExistingTag(ctx, tag)
		}),
		p.journaled(version, head, StepTagCreate, func() error {
			msg := fmt.Sprintf("Release %s", tag)
			if err := p.Runner.Run(ctx, "", "git", "tag", "-a", tag, "-m", msg); err != nil {
				return fmt.Errorf("%w: create tag %s: %w", ErrVersionControl, tag, err)
			}
			return nil
		}),
		p.journaled(version, head, StepTagPush, func() error {
			if err := p.Runner.Run(ctx, "", "git", "push", p.Cfg.Publish.Remote, tag); err != nil {
				return fmt.Errorf("%w: push tag %s: %w", ErrVersionControl, tag, err)
			}
			return nil
		}),
		p.journaled(version, head, StepRelease, func() error {
			return p.createRelease(ctx, tag)
		}),
	}
	return pipeline.Run(p.out(), steps)
}

// journaled wraps a step so completed steps are recorded and, on resume,
// skipped. A dry run leaves the journal untouched so the state of a
// previously interrupted publish survives the preview.
func (p *Publisher) journaled(version, head, name string, fn func() error) pipeline.Step {
	return pipeline.Step{
		Name: name,
		Action: func() pipeline.StepResult {
			if p.DryRun {
				if err := fn(); err != nil {
					return pipeline.Failed(err)
				}
				return pipeline.Success("")
			}
			if p.Resume {
				done, err := p.Repo.StepDone(version, head, name)
				if err != nil {
					return pipeline.Failed(err)
				}
				if done {
					return pipeline.Skipped("already completed")
				}
			}
			if err := fn(); err != nil {
				return pipeline.Failed(err)
			}
			if err := p.Repo.MarkStep(version, head, name, ""); err != nil {
				return pipeline.Failed(err)
			}
			return pipeline.Success("")
		},
	}
}

// deleteExistingTag removes the tag locally and on the remote if either
// already carries it. An absent tag on either side is not an error.
func (p *Publisher) deleteExistingTag(ctx context.Context, tag string) error {
	if out, err := p.Runner.Output(ctx, "", "git", "rev-parse", "--verify", "refs/tags/"+tag); err == nil && out != "" {
		if err := p.Runner.Run(ctx, "", "git", "tag", "-d", tag); err != nil {
			return fmt.Errorf("%w: delete local tag %s: %w", ErrVersionControl, tag, err)
		}
	}
	out, err := p.Runner.Output(ctx, "", "git", "ls-remote", "--tags", p.Cfg.Publish.Remote, tag)
	if err != nil {
		return fmt.Errorf("%w: query remote tags: %w", ErrVersionControl, err)
	}
	if out != "" {
		if err := p.Runner.Run(ctx, "", "git", "push", p.Cfg.Publish.Remote, "--delete", tag); err != nil {
			return fmt.Errorf("%w: delete remote tag %s: %w", ErrVersionControl, tag, err)
		}
	}
	return nil
}

// createRelease creates the remote release with the artifacts attached.
// Upload failures are retried with capped exponential backoff; the tag push
// has already been journaled, so a resumed run retries only this step.
func (p *Publisher) createRelease(ctx context.Context, tag string) error {
	args := []string{"release", "create", tag}
	args = append(args, p.Cfg.Publish.Assets...)
	args = append(args, "--title", tag, "--notes", fmt.Sprintf("%s %s", p.Cfg.App.Name, tag))
	if p.Cfg.Publish.Repo != "" {
		args = append(args, "--repo", p.Cfg.Publish.Repo)
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(2*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := p.Runner.Run(ctx, "", "gh", args...); err != nil {
			// A half-created release blocks re-creation under the same
			// tag; drop it before the next attempt.
			deleteArgs := []string{"release", "delete", tag, "--yes"}
			if p.Cfg.Publish.Repo != "" {
				deleteArgs = append(deleteArgs, "--repo", p.Cfg.Publish.Repo)
			}
			_ = p.Runner.Run(ctx, "", "gh", deleteArgs...)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: create release %s: %w", ErrPublish, tag, err)
	}
	return nil
}
