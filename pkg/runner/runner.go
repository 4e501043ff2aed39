package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/koca-build/rpmdeps/internal/logging"
)

// Runs external commands.
type Runner interface {
	// Run `command` with `args`, returning its captured standard output. Fails with a [*ProcessError] if the command can't be started or exits non-zero.
	Run(ctx context.Context, command string, args []string, logger logging.Logger) (string, error)
}

// The runner used when none is given.
var Default Runner = ShellRunner{}

// A [Runner] backed by a plain function. Mostly useful for scripting tool output in tests.
type FuncRunner func(ctx context.Context, command string, args []string, logger logging.Logger) (string, error)

func (f FuncRunner) Run(ctx context.Context, command string, args []string, logger logging.Logger) (string, error) {
	return f(ctx, command, args, logger)
}

// An external command that failed to run or exited abnormally.
type ProcessError struct {
	// The command that was run.
	Command string
	// Its arguments.
	Args []string
	// The exit status, or `0` if the command never produced one.
	ExitStatus int
	// Captured standard error.
	Stderr string
	// The underlying error.
	Err error
}

func (e *ProcessError) Error() string {
	cmdLine := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))

	if e.ExitStatus != 0 {
		msg := fmt.Sprintf("failed to run '%s': exit status %d", cmdLine, e.ExitStatus)
		if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
			msg += ": " + stderr
		}
		return msg
	}

	return fmt.Sprintf("failed to run '%s': %s", cmdLine, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
