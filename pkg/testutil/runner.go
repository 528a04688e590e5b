// Package testutil provides a scripted command runner for tests
package testutil

import (
	"context"
	"errors"
	"strings"

	"postgen/pkg/shell"
)

// FakeRunner records every command and fails the ones listed in Fail.
// Fail keys are matched against the command line without the binary name,
// e.g. "init" or "commit -m".
type FakeRunner struct {
	Calls []string
	Dirs  []string
	Fail  map[string]bool
}

func NewFakeRunner(fail ...string) *FakeRunner {
	r := &FakeRunner{Fail: make(map[string]bool)}
	for _, f := range fail {
		r.Fail[f] = true
	}
	return r
}

func (r *FakeRunner) Run(ctx context.Context, opts shell.RunOpts, name string, args ...string) shell.Result {
	line := strings.Join(args, " ")
	r.Calls = append(r.Calls, name+" "+line)
	r.Dirs = append(r.Dirs, opts.Dir)

	for prefix := range r.Fail {
		if strings.HasPrefix(line, prefix) {
			return shell.Result{Err: &shell.CommandError{
				Command:  shell.FormatCommand(name, args...),
				ExitCode: 1,
				Err:      errors.New("exit status 1"),
			}}
		}
	}
	return shell.Result{}
}
