package runner

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/koca-build/rpmdeps/internal/env"
	"github.com/koca-build/rpmdeps/internal/logging"
	"github.com/samber/lo"
	shInterp "mvdan.cc/sh/v3/interp"
	shSyntax "mvdan.cc/sh/v3/syntax"
)

// A [Runner] that executes commands through an embedded shell interpreter.
type ShellRunner struct {
	// The working directory. Defaults to the current one.
	Dir string
	// Extra environment variables (i.e. `key=value`).
	Env []string
}

// Quote a command and its arguments into a single shell command line.
func commandLine(command string, args []string) (string, error) {
	words := append([]string{command}, args...)
	quoted := make([]string, 0, len(words))

	for _, word := range words {
		q, err := shSyntax.Quote(word, shSyntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote '%s': %w", word, err)
		}
		quoted = append(quoted, q)
	}

	return strings.Join(quoted, " "), nil
}

// Run a command, returning its standard output.
func (r ShellRunner) Run(ctx context.Context, command string, args []string, logger logging.Logger) (string, error) {
	cmdLine, err := commandLine(command, args)
	if err != nil {
		return "", &ProcessError{Command: command, Args: args, Err: err}
	}
	logger.Debug("Exec: [%s]", cmdLine)

	parsed, err := shSyntax.NewParser().Parse(strings.NewReader(cmdLine), command)
	if err != nil {
		return "", &ProcessError{Command: command, Args: args, Err: fmt.Errorf("shell parser error: %w", err)}
	}

	// Set up interpreter options.
	var stdout, stderr bytes.Buffer
	var interpOpts []shInterp.RunnerOption
	interpOpts = append(interpOpts, shInterp.StdIO(nil, &stdout, &stderr))
	interpOpts = append(interpOpts, shInterp.Env(env.GetEnviron(r.Env...)))

	if r.Dir != "" {
		absDir, err := filepath.Abs(r.Dir)
		if err != nil {
			return "", &ProcessError{Command: command, Args: args, Err: fmt.Errorf("failed to get absolute path of '%s': %w", r.Dir, err)}
		}
		interpOpts = append(interpOpts, shInterp.Dir(absDir))
	}

	interp, err := shInterp.New(interpOpts...)
	if err != nil {
		return "", &ProcessError{Command: command, Args: args, Err: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	err = interp.Run(ctx, parsed)

	stderrLines := lo.Filter(strings.Split(stderr.String(), "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	for _, line := range stderrLines {
		logger.Debug("%s: %s", command, line)
	}

	if err != nil {
		procErr := &ProcessError{
			Command: command,
			Args:    args,
			Stderr:  stderr.String(),
			Err:     err,
		}

		if status, ok := shInterp.IsExitStatus(err); ok {
			procErr.ExitStatus = int(status)
		}

		return stdout.String(), procErr
	}

	return stdout.String(), nil
}
