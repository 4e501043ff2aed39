package main

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/koca-build/rpmdeps/internal/errors"
	"github.com/koca-build/rpmdeps/internal/logging"
	"github.com/koca-build/rpmdeps/pkg/rpm"
	"github.com/koca-build/rpmdeps/pkg/runner"
	"github.com/spf13/cobra"
)

var cliOpts struct {
	rpmbuild   string
	outputType string
	verbose    bool
}

// An error that has already been printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// How `rpmbuild` is run. Replaced in tests.
var toolRunner runner.Runner = runner.Default

var rootCmd = &cobra.Command{
	Use:           "rpmdeps",
	Short:         "Compute RPM dependencies for Electron applications",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var requiresCmd = &cobra.Command{
	Use:   "requires electron-version",
	Short: "Print the Requires list for an Electron version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(ctx context.Context, tool *rpm.Tool, logger logging.Logger) (any, error) {
			assembler := &rpm.Assembler{Tool: tool}
			return assembler.ForElectron(ctx, args[0], logger)
		})
	},
}

var booleanDepsCmd = &cobra.Command{
	Use:   "boolean-deps",
	Short: "Print whether rpmbuild supports boolean dependencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(ctx context.Context, tool *rpm.Tool, logger logging.Logger) (any, error) {
			return tool.SupportsBooleanDependencies(ctx, logger)
		})
	},
}

var usrPathCmd = &cobra.Command{
	Use:   "usr-path",
	Short: "Print the usr path fragment for the package spec",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(ctx context.Context, tool *rpm.Tool, logger logging.Logger) (any, error) {
			return tool.UsrPath(ctx, logger)
		})
	},
}

var rpmVersionCmd = &cobra.Command{
	Use:   "rpm-version",
	Short: "Print the rpmbuild version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(ctx context.Context, tool *rpm.Tool, logger logging.Logger) (any, error) {
			return tool.Version(ctx, logger)
		})
	},
}

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Print everything the installed rpmbuild supports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, func(ctx context.Context, tool *rpm.Tool, logger logging.Logger) (any, error) {
			return tool.Capabilities(ctx, logger)
		})
	},
}

func defaultRpmbuild() string {
	if path := os.Getenv("RPMBUILD"); path != "" {
		return path
	}
	return "rpmbuild"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cliOpts.rpmbuild, "rpmbuild", defaultRpmbuild(), "rpmbuild program to query (env: RPMBUILD)")
	rootCmd.PersistentFlags().StringVarP(&cliOpts.outputType, "output", "o", "text", "output type (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&cliOpts.verbose, "verbose", "v", false, "print debug output")

	rootCmd.AddCommand(requiresCmd, booleanDepsCmd, usrPathCmd, rpmVersionCmd, capabilitiesCmd)
}

// Run one query against `rpmbuild` and print its result.
func runSession(cmd *cobra.Command, query func(ctx context.Context, tool *rpm.Tool, logger logging.Logger) (any, error)) error {
	logger := logging.New(cmd.ErrOrStderr(), cliOpts.verbose)

	printer, err := newPrinter(cliOpts.outputType)
	if err != nil {
		logger.Err("%w", err)
		return reportedError{err}
	}

	tool := &rpm.Tool{Program: cliOpts.rpmbuild, Runner: toolRunner}
	result, err := query(cmd.Context(), tool, logger)
	if err != nil {
		var toolingErr *errors.ToolingError
		if stderrors.As(err, &toolingErr) {
			logger.Err("found %s %s. %s", cliOpts.rpmbuild, toolingErr.Version, toolingErr.Error())
		} else {
			logger.Err("%w", err)
		}
		return reportedError{err}
	}

	if err := printer(cmd.OutOrStdout(), result); err != nil {
		logger.Err("failed to write output: %w", err)
		return reportedError{err}
	}

	return nil
}

func main() {
	logging.Default = logging.New(os.Stderr, false)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var reported reportedError
		if !stderrors.As(err, &reported) {
			logging.Err("%w", err)
		}
		os.Exit(1)
	}
}
