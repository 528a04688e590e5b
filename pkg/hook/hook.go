// Package hook runs the post-generation steps in their fixed order:
// repository setup, license file, next-steps report.
package hook

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"postgen/pkg/config"
	"postgen/pkg/git"
	"postgen/pkg/journal"
	"postgen/pkg/license"
	"postgen/pkg/report"
	"postgen/pkg/shell"
	"postgen/pkg/step"
)

// Recorder persists the outcome of a run. *journal.Journal implements it.
type Recorder interface {
	RecordRun(r journal.Run) error
}

type Options struct {
	Dir      string
	Out      io.Writer
	Runner   shell.Runner
	Recorder Recorder
	Log      log.FieldLogger
}

type Hook struct {
	cfg      config.Config
	out      io.Writer
	git      *git.Manager
	license  *license.Writer
	recorder Recorder
	log      log.FieldLogger
}

func New(cfg config.Config, opts Options) *Hook {
	if opts.Log == nil {
		opts.Log = log.StandardLogger()
	}
	if opts.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			opts.Log.WithError(err).Warn("cannot resolve working directory, using relative paths")
		}
		opts.Dir = wd
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Runner == nil {
		opts.Runner = &shell.ExecRunner{Log: opts.Log}
	}

	lw := license.NewWriter(opts.Dir, opts.Out)
	lw.Log = opts.Log

	return &Hook{
		cfg:      cfg,
		out:      opts.Out,
		git:      git.NewManagerWithRepoRoot(opts.Dir, opts.Runner, opts.Out),
		license:  lw,
		recorder: opts.Recorder,
		log:      opts.Log,
	}
}

// Run executes every step. Step failures are reported on the way and in the
// returned summary; they never stop later independent steps.
func (h *Hook) Run(ctx context.Context) step.Summary {
	started := time.Now()
	fmt.Fprintf(h.out, "🚀 Setting up %s...\n", h.cfg.ProjectName)

	var summary step.Summary
	summary = append(summary, h.git.Initialize(ctx, h.cfg)...)
	summary = append(summary, h.writeLicense())

	report.Print(h.out, h.cfg)
	summary = append(summary, step.OK(step.NextSteps, ""))

	h.record(started, summary)
	return summary
}

func (h *Hook) writeLicense() step.Result {
	outcome, err := h.license.Write(h.cfg)
	if err != nil {
		fmt.Fprintf(h.out, "❌ Failed to create %s license file\n", h.cfg.License)
		h.log.WithError(err).Error("license file not written")
		return step.Failed(step.License, err.Error())
	}

	switch outcome {
	case license.Written:
		return step.OK(step.License, h.cfg.License)
	case license.Unknown:
		return step.Skipped(step.License, fmt.Sprintf("unknown license %q", h.cfg.License))
	default:
		return step.Skipped(step.License, "license is None")
	}
}

func (h *Hook) record(started time.Time, summary step.Summary) {
	if h.recorder == nil {
		return
	}

	run := journal.Run{
		ID:          journal.NewRunID(),
		StartedAt:   started,
		Duration:    time.Since(started),
		Dir:         h.git.GetRepoRoot(),
		ProjectName: h.cfg.ProjectName,
		ProjectSlug: h.cfg.ProjectSlug,
		License:     h.cfg.License,
		Steps:       summary,
	}
	if err := h.recorder.RecordRun(run); err != nil {
		h.log.WithError(err).Warn("failed to record run in journal")
	}
}
