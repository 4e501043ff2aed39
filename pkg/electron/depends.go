package electron

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/koca-build/rpmdeps/pkg/electron/literals"
	"github.com/samber/lo"
)

// Maps capability names (see [literals]) to the distribution packages providing them. An entry may list several alternatives, or hold a single pre-formatted group such as `(nss or mozilla-nss)`.
type CapabilityMap map[string][]string

// Get the packages for a capability, or nothing if the map doesn't provide it.
func (m CapabilityMap) lookup(capability string) []string {
	return m[capability]
}

// Copy the map, so the caller can modify it.
func (m CapabilityMap) Clone() CapabilityMap {
	clone := make(CapabilityMap, len(m))
	for k, v := range m {
		clone[k] = append([]string(nil), v...)
	}
	return clone
}

// A version-gated capability: needed from `since` onward, or before `until`.
type gate struct {
	capability string
	since      *semver.Version
	until      *semver.Version
}

func (g gate) applies(v *semver.Version) bool {
	if g.since != nil && v.LessThan(g.since) {
		return false
	}
	if g.until != nil && !v.LessThan(g.until) {
		return false
	}
	return true
}

var (
	gtk3Since     = semver.MustParse("2.0.0-beta.1")
	gconfUntil    = semver.MustParse("3.0.0-beta.1")
	uuidSince     = semver.MustParse("4.0.0-beta.1")
	atspiSince    = semver.MustParse("5.0.0-beta.5")
	drmSince      = semver.MustParse("9.0.0-beta.1")
	xcbDri3Since  = semver.MustParse("11.0.0-beta.1")
	trashKDESince = semver.MustParse("1.4.1")
	trashGioSince = semver.MustParse("1.7.2")
)

// Runtime dependencies, in output order.
var dependGates = []gate{
	{capability: literals.GConf, until: gconfUntil},
	{capability: literals.GTK2, until: gtk3Since},
	{capability: literals.GTK3, since: gtk3Since},
	{capability: literals.Notify},
	{capability: literals.NSS},
	{capability: literals.XSS},
	{capability: literals.XTST},
	{capability: literals.XdgUtils},
	{capability: literals.ATSPI, since: atspiSince},
	{capability: literals.DRM, since: drmSince},
	{capability: literals.GBM, since: drmSince},
	{capability: literals.UUID, since: uuidSince},
	{capability: literals.XcbDri3, since: xcbDri3Since},
}

// Packages any one of which lets `shell.moveItemToTrash` work, in output order.
var trashGates = []gate{
	{capability: literals.GVFS, until: trashKDESince},
	{capability: literals.KDECliTools, since: trashKDESince},
	{capability: literals.KDERuntime, since: trashKDESince},
	{capability: literals.TrashCli, since: trashKDESince},
	{capability: literals.Glib2, since: trashGioSince},
	{capability: literals.GVFS, since: trashKDESince},
}

// Parse an Electron version. A leading `v` is accepted.
func ParseVersion(electronVersion string) (*semver.Version, error) {
	v, err := semver.NewVersion(electronVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid Electron version '%s': %w", electronVersion, err)
	}
	return v, nil
}

func resolve(electronVersion string, capabilities CapabilityMap, gates []gate) ([]string, error) {
	v, err := ParseVersion(electronVersion)
	if err != nil {
		return nil, err
	}

	applicable := lo.Filter(gates, func(g gate, _ int) bool {
		return g.applies(v)
	})
	packages := lo.Flatten(lo.Map(applicable, func(g gate, _ int) []string {
		return capabilities.lookup(g.capability)
	}))

	return lo.Uniq(packages), nil
}

// Get the runtime dependencies of the given Electron version.
func GetDepends(electronVersion string, capabilities CapabilityMap) ([]string, error) {
	return resolve(electronVersion, capabilities, dependGates)
}

// Get the packages that can each provide trash support for the given Electron version. Only one of them is needed.
func GetTrashDepends(electronVersion string, capabilities CapabilityMap) ([]string, error) {
	return resolve(electronVersion, capabilities, trashGates)
}

// Resolves dependencies with [GetDepends] and [GetTrashDepends].
type Resolver struct{}

// The stateless default [Resolver].
var DefaultResolver = Resolver{}

func (Resolver) Depends(electronVersion string, capabilities CapabilityMap) ([]string, error) {
	return GetDepends(electronVersion, capabilities)
}

func (Resolver) TrashDepends(electronVersion string, capabilities CapabilityMap) ([]string, error) {
	return GetTrashDepends(electronVersion, capabilities)
}
