package rpm

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// A parsed RPM tool version. RPM does not follow semantic versioning, so only the first three numeric components are considered.
type Version struct {
	// The major version.
	Major int
	// The minor version.
	Minor int
	// The patch version.
	Patch int
	// Set when the string had fewer than three components, or a component had no leading digits.
	malformed bool
}

// Parse the leading base-10 digits of a version component, i.e. `0-rc1` parses as `0`. A leading `+` is allowed, and values too large for an int are clamped.
func parseComponent(segment string) (int, bool) {
	digits := strings.TrimPrefix(strings.TrimSpace(segment), "+")
	end := strings.IndexFunc(digits, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if end != -1 {
		digits = digits[:end]
	}

	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// Parse a version string such as `4.16.1.3`. Components past the third are ignored. This never fails: malformed input yields a [Version] for which [Version.AtLeast] is always false.
func ParseVersion(raw string) Version {
	segments := strings.Split(raw, ".")
	if len(segments) > 3 {
		segments = segments[:3]
	}

	type component struct {
		value int
		ok    bool
	}
	components := lo.Map(segments, func(segment string, _ int) component {
		value, ok := parseComponent(segment)
		return component{value: value, ok: ok}
	})

	if len(components) < 3 || lo.SomeBy(components, func(c component) bool { return !c.ok }) {
		return Version{malformed: true}
	}

	return Version{
		Major: components[0].value,
		Minor: components[1].value,
		Patch: components[2].value,
	}
}

// Whether the version was parsed from a well-formed string.
func (v Version) Valid() bool {
	return !v.malformed
}

// Compare two versions component by component, returning `-1`, `0` or `1`. Malformed versions are not ordered; use [Version.AtLeast] for threshold checks.
func (v Version) Compare(other Version) int {
	pairs := [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}

	for _, pair := range pairs {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}

	return 0
}

// Report whether the version is greater than or equal to `threshold`. Always false if either is malformed.
func (v Version) AtLeast(threshold Version) bool {
	if v.malformed || threshold.malformed {
		return false
	}
	return v.Compare(threshold) >= 0
}

// Get the printable representation of a [Version].
func (v Version) String() string {
	if v.malformed {
		return "invalid"
	}

	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
