package rpm

import (
	"context"
	"fmt"
	"strings"

	"github.com/koca-build/rpmdeps/internal/errors"
	"github.com/koca-build/rpmdeps/internal/logging"
	"github.com/koca-build/rpmdeps/pkg/electron"
	"github.com/koca-build/rpmdeps/pkg/electron/literals"
)

// RPM package names for each capability Electron may need. Read-only.
var dependencyMap = electron.CapabilityMap{
	literals.ATSPI:       {"at-spi2-core"},
	literals.DRM:         {"(libdrm or libdrm2)"},
	literals.GBM:         {"(mesa-libgbm or libgbm1)"},
	literals.GConf:       {"GConf2"},
	literals.Glib2:       {"glib2"},
	literals.GTK2:        {"gtk2"},
	literals.GTK3:        {"gtk3"},
	literals.GVFS:        {"gvfs-client"},
	literals.KDECliTools: {"kde-cli-tools", "kde-cli-tools5"},
	literals.KDERuntime:  {"kde-runtime"},
	literals.Notify:      {"(libnotify or libnotify4)"},
	literals.NSS:         {"(nss or mozilla-nss)"},
	literals.TrashCli:    {"trash-cli"},
	literals.UUID:        {"(libuuid or libuuid1)"},
	literals.XcbDri3:     {"(libxcb or libxcb1)"},
	literals.XdgUtils:    {"xdg-utils"},
	literals.XSS:         {"libXScrnSaver"},
	literals.XTST:        {"(libXtst or libXtst6)"},
}

// Get a copy of the RPM package names for each capability Electron may need, which the caller may extend and pass to an [Assembler].
func DependencyMap() electron.CapabilityMap {
	return dependencyMap.Clone()
}

// Shown when `rpmbuild` can't express alternative dependencies.
const upgradeMessage = "Please upgrade to RPM 4.13 or above, which supports boolean dependencies.\n" +
	"This is used to express Electron dependencies for a wide variety of RPM-using distributions."

// Derives package lists from an Electron version.
type Resolver interface {
	// The runtime dependencies.
	Depends(electronVersion string, capabilities electron.CapabilityMap) ([]string, error)
	// Packages any one of which provides trash support.
	TrashDepends(electronVersion string, capabilities electron.CapabilityMap) ([]string, error)
}

// The `Requires` entries of an RPM package spec.
type Dependencies struct {
	Requires []string `json:"requires" yaml:"requires"`
}

// Transform the trash dependencies into a single RPM boolean dependency.
func TrashRequiresAsBoolean(resolver Resolver, electronVersion string, capabilities electron.CapabilityMap) ([]string, error) {
	trashDepends, err := resolver.TrashDepends(electronVersion, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve trash dependencies: %w", err)
	}

	switch len(trashDepends) {
	case 0:
		return []string{}, nil
	case 1:
		return []string{trashDepends[0]}, nil
	default:
		return []string{fmt.Sprintf("(%s)", strings.Join(trashDepends, " or "))}, nil
	}
}

// Builds the `Requires` list for an Electron application.
type Assembler struct {
	// The RPM build tool to check. Defaults to [DefaultTool].
	Tool *Tool
	// Defaults to [electron.DefaultResolver].
	Resolver Resolver
	// Defaults to the table returned by [DependencyMap].
	CapabilityMap electron.CapabilityMap
}

// Uses the `rpmbuild` on `$PATH` and the default tables.
var DefaultAssembler = &Assembler{}

func (a *Assembler) tool() *Tool {
	if a.Tool == nil {
		return DefaultTool
	}
	return a.Tool
}

func (a *Assembler) resolver() Resolver {
	if a.Resolver == nil {
		return electron.DefaultResolver
	}
	return a.Resolver
}

func (a *Assembler) capabilityMap() electron.CapabilityMap {
	if a.CapabilityMap == nil {
		return dependencyMap
	}
	return a.CapabilityMap
}

// Get the dependencies for Electron itself. Fails with an [*errors.ToolingError] if `rpmbuild` is older than 4.13, and returns runner failures unchanged.
func (a *Assembler) ForElectron(ctx context.Context, electronVersion string, logger logging.Logger) (Dependencies, error) {
	requires, err := a.resolver().Depends(electronVersion, a.capabilityMap())
	if err != nil {
		return Dependencies{}, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	version, err := a.tool().Version(ctx, logger)
	if err != nil {
		return Dependencies{}, err
	}

	if !VersionSupportsBooleanDependencies(version) {
		return Dependencies{}, errors.Errorf(version, "%s", upgradeMessage)
	}

	trashRequires, err := TrashRequiresAsBoolean(a.resolver(), electronVersion, a.capabilityMap())
	if err != nil {
		return Dependencies{}, err
	}

	all := make([]string, 0, len(requires)+len(trashRequires))
	all = append(all, requires...)
	all = append(all, trashRequires...)

	return Dependencies{Requires: all}, nil
}

// Get the dependencies for Electron itself, using the `rpmbuild` on `$PATH`.
func ForElectron(ctx context.Context, electronVersion string, logger logging.Logger) (Dependencies, error) {
	return DefaultAssembler.ForElectron(ctx, electronVersion, logger)
}
