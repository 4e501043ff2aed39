package rpm

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/koca-build/rpmdeps/internal/logging"
	"github.com/koca-build/rpmdeps/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A tool whose `--version` banner is `banner`, counting how many times it was run.
func bannerTool(banner string, calls *int) *Tool {
	return &Tool{
		Runner: runner.FuncRunner(func(ctx context.Context, command string, args []string, logger logging.Logger) (string, error) {
			if calls != nil {
				*calls++
			}
			if command != "rpmbuild" || len(args) != 1 || args[0] != "--version" {
				return "", errors.New("unexpected command")
			}
			return banner, nil
		}),
	}
}

func failingTool(err error) *Tool {
	return &Tool{
		Runner: runner.FuncRunner(func(ctx context.Context, command string, args []string, logger logging.Logger) (string, error) {
			return "", err
		}),
	}
}

func TestVersionSupportsBooleanDependencies(t *testing.T) {
	tests := map[string]bool{
		"4.13.0":   true,
		"4.13.1":   true,
		"4.14.0":   true,
		"4.20.0":   true,
		"5.0.0":    true,
		"4.12.0":   false,
		"4.12.99":  false,
		"4.9.0":    false,
		"3.20.0":   false,
		"4.13":     false,
		"bogus":    false,
		"":         false,
		"4.16.1.3": true,
	}

	for raw, want := range tests {
		assert.Equal(t, want, VersionSupportsBooleanDependencies(raw), raw)
	}
}

func TestUsrPath(t *testing.T) {
	assert.Equal(t, "../usr/.", UsrPath("4.20.0"))
	assert.Equal(t, "../usr/.", UsrPath("4.20.1"))
	assert.Equal(t, "../usr/.", UsrPath("6.0.0"))
	assert.Equal(t, "usr/*", UsrPath("4.19.9"))
	assert.Equal(t, "usr/*", UsrPath("4.2.0"))
	assert.Equal(t, "usr/*", UsrPath("4.20"))
	assert.Equal(t, "usr/*", UsrPath("not-a-version"))
}

func TestToolVersion(t *testing.T) {
	tests := map[string]string{
		"RPM version 4.18.2\n":   "4.18.2",
		"rpmbuild (RPM) 4.10.0":  "4.10.0",
		"  RPM version 4.20.0  ": "4.20.0",
		"":                       "",
	}

	for banner, want := range tests {
		version, err := bannerTool(banner, nil).Version(context.Background(), logging.Discard())
		require.NoError(t, err)
		assert.Equal(t, want, version, banner)
	}
}

func TestToolQueries(t *testing.T) {
	ctx := context.Background()
	logger := logging.Discard()

	supported, err := bannerTool("RPM version 4.14.0", nil).SupportsBooleanDependencies(ctx, logger)
	require.NoError(t, err)
	assert.True(t, supported)

	supported, err = bannerTool("rpmbuild (RPM) 4.10.0", nil).SupportsBooleanDependencies(ctx, logger)
	require.NoError(t, err)
	assert.False(t, supported)

	usrPath, err := bannerTool("RPM version 4.20.0", nil).UsrPath(ctx, logger)
	require.NoError(t, err)
	assert.Equal(t, "../usr/.", usrPath)

	usrPath, err = bannerTool("RPM version 4.19.9", nil).UsrPath(ctx, logger)
	require.NoError(t, err)
	assert.Equal(t, "usr/*", usrPath)
}

func TestToolCapabilities(t *testing.T) {
	calls := 0
	tool := bannerTool("RPM version 4.18.2", &calls)

	caps, err := tool.Capabilities(context.Background(), logging.Discard())

	require.NoError(t, err)
	assert.Equal(t, Capabilities{Version: "4.18.2", SupportsBooleanDeps: true, UsrPath: "usr/*"}, caps)
	assert.Equal(t, 1, calls)
}

func TestToolCapabilitiesWarnsOnMalformedVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)

	caps, err := bannerTool("RPM version unknown", nil).Capabilities(context.Background(), logger)

	require.NoError(t, err)
	assert.False(t, caps.SupportsBooleanDeps)
	assert.Equal(t, "usr/*", caps.UsrPath)
	assert.Contains(t, buf.String(), "could not parse rpmbuild version 'unknown'")
}

func TestEveryQueryWarnsOnMalformedVersion(t *testing.T) {
	ctx := context.Background()
	tool := bannerTool("RPM version 4.x", nil)

	queries := map[string]func(logger logging.Logger) error{
		"boolean dependencies": func(logger logging.Logger) error {
			_, err := tool.SupportsBooleanDependencies(ctx, logger)
			return err
		},
		"usr path": func(logger logging.Logger) error {
			_, err := tool.UsrPath(ctx, logger)
			return err
		},
		"version": func(logger logging.Logger) error {
			_, err := tool.Version(ctx, logger)
			return err
		},
	}

	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, query(logging.New(&buf, false)))
			assert.Contains(t, buf.String(), "could not parse rpmbuild version '4.x'")
		})
	}
}

func TestWellFormedVersionDoesNotWarn(t *testing.T) {
	var buf bytes.Buffer

	_, err := bannerTool("RPM version 4.18.2", nil).UsrPath(context.Background(), logging.New(&buf, false))

	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestToolProgramOverride(t *testing.T) {
	var gotCommand string
	tool := &Tool{
		Program: "/opt/rpm/bin/rpmbuild",
		Runner: runner.FuncRunner(func(ctx context.Context, command string, args []string, logger logging.Logger) (string, error) {
			gotCommand = command
			return "RPM version 4.19.1", nil
		}),
	}

	version, err := tool.Version(context.Background(), logging.Discard())

	require.NoError(t, err)
	assert.Equal(t, "4.19.1", version)
	assert.Equal(t, "/opt/rpm/bin/rpmbuild", gotCommand)
}

func TestToolPropagatesRunnerErrors(t *testing.T) {
	procErr := &runner.ProcessError{Command: "rpmbuild", Args: []string{"--version"}, ExitStatus: 127}
	tool := failingTool(procErr)
	ctx := context.Background()
	logger := logging.Discard()

	_, err := tool.Version(ctx, logger)
	assert.Same(t, procErr, err)

	_, err = tool.SupportsBooleanDependencies(ctx, logger)
	assert.Same(t, procErr, err)

	_, err = tool.UsrPath(ctx, logger)
	assert.Same(t, procErr, err)

	_, err = tool.Capabilities(ctx, logger)
	assert.Same(t, procErr, err)
}

func TestToolQueriesAreIdempotent(t *testing.T) {
	tool := bannerTool("RPM version 4.20.0", nil)
	ctx := context.Background()
	logger := logging.Discard()

	first, err := tool.Capabilities(ctx, logger)
	require.NoError(t, err)
	second, err := tool.Capabilities(ctx, logger)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPackageLevelQueriesUseDefaultTool(t *testing.T) {
	original := DefaultTool
	defer func() { DefaultTool = original }()
	DefaultTool = bannerTool("RPM version 4.20.0", nil)

	ctx := context.Background()
	logger := logging.Discard()

	version, err := GetRpmVersion(ctx, logger)
	require.NoError(t, err)
	assert.Equal(t, "4.20.0", version)

	supported, err := RpmSupportsBooleanDependencies(ctx, logger)
	require.NoError(t, err)
	assert.True(t, supported)

	usrPath, err := GetRpmUsrPath(ctx, logger)
	require.NoError(t, err)
	assert.Equal(t, "../usr/.", usrPath)
}
