package rpm

import (
	"context"
	"strings"

	"github.com/koca-build/rpmdeps/internal/logging"
	"github.com/koca-build/rpmdeps/pkg/runner"
	"github.com/samber/lo"
)

// The RPM build tool.
const rpmBuildProgram = "rpmbuild"

var (
	// The first RPM version that supports boolean dependencies.
	BooleanDependenciesVersion = Version{Major: 4, Minor: 13, Patch: 0}
	// The first RPM version that expects `%files` paths relative to the build root.
	UsrPathVersion = Version{Major: 4, Minor: 20, Patch: 0}
)

const (
	// The `usr` path fragment for RPM >= 4.20.
	UsrPathRelative = "../usr/."
	// The `usr` path fragment for older RPM versions.
	UsrPathGlob = "usr/*"
)

// Determine whether the RPM version string has support for boolean dependencies (>= 4.13.0).
func VersionSupportsBooleanDependencies(rpmVersion string) bool {
	return ParseVersion(rpmVersion).AtLeast(BooleanDependenciesVersion)
}

// Determine the path to the `usr` directory based on the RPM version string.
func UsrPath(rpmVersion string) string {
	return lo.Ternary(ParseVersion(rpmVersion).AtLeast(UsrPathVersion), UsrPathRelative, UsrPathGlob)
}

// Get the version token from `rpmbuild --version` output, i.e. `4.18.2` from `RPM version 4.18.2`.
func versionFromBanner(output string) string {
	version, _ := lo.Last(strings.Fields(strings.TrimSpace(output)))
	return version
}

// What the installed RPM build tool supports.
type Capabilities struct {
	// The tool's version string.
	Version string `json:"version" yaml:"version"`
	// Whether boolean dependencies may be used.
	SupportsBooleanDeps bool `json:"supportsBooleanDeps" yaml:"supportsBooleanDeps"`
	// The `usr` path fragment to use in the package spec.
	UsrPath string `json:"usrPath" yaml:"usrPath"`
}

// An RPM build tool installed on the host.
type Tool struct {
	// The program to run. Defaults to `rpmbuild`.
	Program string
	// How the program is run. Defaults to [runner.Default].
	Runner runner.Runner
}

// The `rpmbuild` found on `$PATH`.
var DefaultTool = &Tool{}

func (t *Tool) program() string {
	if t.Program == "" {
		return rpmBuildProgram
	}
	return t.Program
}

func (t *Tool) cmdRunner() runner.Runner {
	if t.Runner == nil {
		return runner.Default
	}
	return t.Runner
}

// Get the tool's version string. Runner failures are returned unchanged.
func (t *Tool) Version(ctx context.Context, logger logging.Logger) (string, error) {
	output, err := t.cmdRunner().Run(ctx, t.program(), []string{"--version"}, logger)
	if err != nil {
		return "", err
	}

	version := versionFromBanner(output)
	logger.Debug("found %s version '%s'", t.program(), version)

	if !ParseVersion(version).Valid() {
		logger.Warn("could not parse %s version '%s', assuming an old release", t.program(), version)
	}

	return version, nil
}

// Determine whether the tool supports boolean dependencies (>= 4.13.0).
func (t *Tool) SupportsBooleanDependencies(ctx context.Context, logger logging.Logger) (bool, error) {
	version, err := t.Version(ctx, logger)
	if err != nil {
		return false, err
	}
	return VersionSupportsBooleanDependencies(version), nil
}

// Determine the path to the `usr` directory based on the tool's version.
func (t *Tool) UsrPath(ctx context.Context, logger logging.Logger) (string, error) {
	version, err := t.Version(ctx, logger)
	if err != nil {
		return "", err
	}
	return UsrPath(version), nil
}

// Answer every version-gated question with a single tool invocation.
func (t *Tool) Capabilities(ctx context.Context, logger logging.Logger) (Capabilities, error) {
	version, err := t.Version(ctx, logger)
	if err != nil {
		return Capabilities{}, err
	}

	return Capabilities{
		Version:             version,
		SupportsBooleanDeps: VersionSupportsBooleanDependencies(version),
		UsrPath:             UsrPath(version),
	}, nil
}

// Get the version of the `rpmbuild` on `$PATH`.
func GetRpmVersion(ctx context.Context, logger logging.Logger) (string, error) {
	return DefaultTool.Version(ctx, logger)
}

// Retrieve the RPM version and determine whether it has support for boolean dependencies (>= 4.13.0).
func RpmSupportsBooleanDependencies(ctx context.Context, logger logging.Logger) (bool, error) {
	return DefaultTool.SupportsBooleanDependencies(ctx, logger)
}

// Retrieve the RPM version and determine the path to the `usr` directory.
func GetRpmUsrPath(ctx context.Context, logger logging.Logger) (string, error) {
	return DefaultTool.UsrPath(ctx, logger)
}
