// Package shell runs external commands for the post-generation steps.
//
// A failed command is never fatal: it is logged once, here, and handed back
// as a failed Result so callers can decide whether later steps still make sense.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Result holds the outcome of a single command.
type Result struct {
	Output string
	Err    error
}

// OK reports whether the command exited with status zero.
func (r Result) OK() bool {
	return r.Err == nil
}

// RunOpts holds optional parameters for command execution.
type RunOpts struct {
	Dir string            // working directory (optional)
	Env map[string]string // extra environment variables (overlay)
}

// Runner is the interface for running external commands.
type Runner interface {
	Run(ctx context.Context, opts RunOpts, name string, args ...string) Result
}

// CommandError describes a command that could not be started or exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	Log log.FieldLogger
}

// NewExecRunner creates an ExecRunner logging to the standard logrus logger.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Log: log.StandardLogger()}
}

// Run executes name with args and returns its trimmed stdout.
// Arguments are passed straight to the process, no shell is involved.
func (r *ExecRunner) Run(ctx context.Context, opts RunOpts, name string, args ...string) Result {
	command := FormatCommand(name, args...)
	r.logger().Debugf("+ %s", command)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	if len(opts.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	if err := cmd.Run(); err != nil {
		cmdErr := &CommandError{
			Command:  command,
			ExitCode: exitCode(err),
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		r.logger().WithField("exit_code", cmdErr.ExitCode).
			Errorf("Error running command '%s': %v", command, cmdErr)
		return Result{Err: cmdErr}
	}

	return Result{Output: strings.TrimSpace(stdout.String())}
}

func (r *ExecRunner) logger() log.FieldLogger {
	if r.Log == nil {
		return log.StandardLogger()
	}
	return r.Log
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// FormatCommand renders a command line for logs, quoting arguments that contain spaces.
func FormatCommand(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
